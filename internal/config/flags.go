package config

import (
	"flag"
	"io"
	"strconv"
)

// Flags holds the command-line layer. Only flags the user explicitly set
// are applied on top of the other layers.
type Flags struct {
	ConfigFile string
	EnvFile    string

	fs     *flag.FlagSet
	values Config
	set    map[string]struct{}
}

func NewFlags(name string, errorHandling flag.ErrorHandling) *Flags {
	f := &Flags{
		fs:  flag.NewFlagSet(name, errorHandling),
		set: make(map[string]struct{}),
	}
	f.values.SetDefaults()

	v := &f.values
	f.fs.StringVar(&f.ConfigFile, "c", "", "Path to config file")
	f.fs.StringVar(&f.EnvFile, "env-file", DefaultEnvFile, "Path to dotenv file")

	f.fs.StringVar(&v.LoaderConfig.ChallengeFileName, "chall-yml", v.LoaderConfig.ChallengeFileName, "Challenge metadata file name (e.g. challenge.yml, task.yml)")
	f.fs.StringVar(&v.LoaderConfig.TestedFileName, "tested-yml", v.LoaderConfig.TestedFileName, "Tested status file name (i.e. tested.yml)")
	f.fs.StringVar(&v.ReportConfig.DirPath, "dir-path", v.ReportConfig.DirPath, "Directory to scan")
	f.fs.StringVar(&v.ReportConfig.OutputPath, "output-path", v.ReportConfig.OutputPath, "Directory to write the report into")
	f.fs.StringVar(&v.ReportConfig.OutputFileName, "output-name", v.ReportConfig.OutputFileName, "Report file name (default depends on schema)")
	f.fs.StringVar(&v.ReportConfig.Schema, "schema", v.ReportConfig.Schema, "Report schema: minimal or extended")
	f.fs.StringVar(&v.ReportConfig.TestedStyle, "tested-style", v.ReportConfig.TestedStyle, "Tested column style: word or glyph")
	f.fs.BoolVar(&v.ReportConfig.HTML, "html", v.ReportConfig.HTML, "Also write an HTML preview of the report")
	f.fs.StringVar(&v.LogLevel, "log-level", v.LogLevel, "Log level: debug, info, warn, error")
	f.fs.BoolVar(&v.Strict, "strict", v.Strict, "Exit with non-zero code if the report cannot be written")

	return f
}

func (f *Flags) Parse(args []string) error {
	if err := f.fs.Parse(args); err != nil {
		return err
	}

	f.fs.Visit(func(fl *flag.Flag) {
		f.set[fl.Name] = struct{}{}
	})

	return nil
}

func (f *Flags) Apply(c *Config) {
	v := &f.values

	apply := map[string]func(){
		"chall-yml":    func() { c.LoaderConfig.ChallengeFileName = v.LoaderConfig.ChallengeFileName },
		"tested-yml":   func() { c.LoaderConfig.TestedFileName = v.LoaderConfig.TestedFileName },
		"dir-path":     func() { c.ReportConfig.DirPath = v.ReportConfig.DirPath },
		"output-path":  func() { c.ReportConfig.OutputPath = v.ReportConfig.OutputPath },
		"output-name":  func() { c.ReportConfig.OutputFileName = v.ReportConfig.OutputFileName },
		"schema":       func() { c.ReportConfig.Schema = v.ReportConfig.Schema },
		"tested-style": func() { c.ReportConfig.TestedStyle = v.ReportConfig.TestedStyle },
		"html":         func() { c.ReportConfig.HTML = v.ReportConfig.HTML },
		"log-level":    func() { c.LogLevel = v.LogLevel },
		"strict":       func() { c.Strict = v.Strict },
	}

	for name := range f.set {
		if fn, ok := apply[name]; ok {
			fn()
		}
	}
}

func (f *Flags) SetOutput(w io.Writer) {
	f.fs.SetOutput(w)
}

// Strict resolves strict mode when loading the configuration failed: an
// explicit --strict wins, then CHALLTABLE_STRICT from lookup. The config file
// and the dotenv file are not consulted.
func (f *Flags) Strict(lookup LookupFunc) bool {
	if _, ok := f.set["strict"]; ok {
		return f.values.Strict
	}

	if lookup == nil {
		return false
	}

	v, ok := lookup(envPrefix + "STRICT")
	if !ok {
		return false
	}

	strict, err := strconv.ParseBool(v)

	return err == nil && strict
}
