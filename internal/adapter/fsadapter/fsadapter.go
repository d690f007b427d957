package fsadapter

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/jgivc/challtable/internal/common"
	"github.com/jgivc/challtable/internal/config"
	"github.com/jgivc/challtable/internal/entity"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"
)

// Raw file shapes. Pointers tell a missing key apart from a zero value.
type challengeFile struct {
	Name     *string   `yaml:"name"`
	Author   *string   `yaml:"author"`
	Category *string   `yaml:"category"`
	Tags     *[]string `yaml:"tags"`
}

type testedFile struct {
	Tested    *strictBool `yaml:"tested"`
	Tester    *string     `yaml:"tester"`
	Solver    *string     `yaml:"solver"`
	TestedURL *string     `yaml:"tested_url"`
}

// strictBool accepts only the YAML 1.2 booleans. yaml.v2 would also take
// yes/no/on/off.
type strictBool bool

func (b *strictBool) UnmarshalYAML(unmarshal func(any) error) error {
	var value any
	if err := unmarshal(&value); err != nil {
		return err
	}

	if _, ok := value.(bool); !ok {
		return fmt.Errorf("not a boolean: %v", value)
	}

	var raw string
	if err := unmarshal(&raw); err != nil {
		return err
	}

	switch raw {
	case "true", "True", "TRUE":
		*b = true
	case "false", "False", "FALSE":
		*b = false
	default:
		return fmt.Errorf("not a boolean: %q", raw)
	}

	return nil
}

type fsAdapter struct {
	fs  afero.Fs
	cfg *config.FSAdapterConfig
	log *slog.Logger
}

func NewFSAdapterWithFS(fs afero.Fs, cfg *config.FSAdapterConfig, log *slog.Logger) *fsAdapter {
	return &fsAdapter{
		fs:  fs,
		cfg: cfg,
		log: log.With(slog.String("item", "FSAdapter")),
	}
}

// ToRecord reads the challenge and tested files of folderPath. The error wraps
// common.ErrNotFound when a file is absent and common.ErrParse when a file
// does not have the required shape.
func (a *fsAdapter) ToRecord(folderPath string) (entity.Record, error) {
	challenge, err := a.readChallenge(filepath.Join(folderPath, a.cfg.ChallengeFileName))
	if err != nil {
		return entity.Record{}, err
	}

	tested, err := a.readTested(filepath.Join(folderPath, a.cfg.TestedFileName))
	if err != nil {
		return entity.Record{}, err
	}

	a.log.Debug("Found challenge", slog.String("path", folderPath), slog.String("name", challenge.Name))

	return entity.Record{
		SourcePath: folderPath,
		Challenge:  challenge,
		Tested:     tested,
	}, nil
}

func (a *fsAdapter) readChallenge(fileName string) (entity.Challenge, error) {
	var cf challengeFile
	if err := a.decode(fileName, &cf); err != nil {
		return entity.Challenge{}, err
	}

	missing := missingFields(
		field{"name", cf.Name != nil},
		field{"author", cf.Author != nil},
		field{"category", cf.Category != nil},
		field{"tags", cf.Tags != nil},
	)
	if missing != nil {
		return entity.Challenge{}, fmt.Errorf("%w: %s: %w", common.ErrParse, fileName, missing)
	}

	return entity.Challenge{
		Name:     *cf.Name,
		Author:   *cf.Author,
		Category: *cf.Category,
		Tags:     *cf.Tags,
	}, nil
}

func (a *fsAdapter) readTested(fileName string) (entity.TestedStatus, error) {
	var tf testedFile
	if err := a.decode(fileName, &tf); err != nil {
		return entity.TestedStatus{}, err
	}

	fields := []field{{"tested", tf.Tested != nil}}
	if a.cfg.Extended {
		fields = append(fields,
			field{"tester", tf.Tester != nil},
			field{"solver", tf.Solver != nil},
			field{"tested_url", tf.TestedURL != nil},
		)
	}

	if missing := missingFields(fields...); missing != nil {
		return entity.TestedStatus{}, fmt.Errorf("%w: %s: %w", common.ErrParse, fileName, missing)
	}

	return entity.TestedStatus{
		Tested:    bool(*tf.Tested),
		Tester:    deref(tf.Tester),
		Solver:    deref(tf.Solver),
		TestedURL: deref(tf.TestedURL),
	}, nil
}

func (a *fsAdapter) decode(fileName string, out any) error {
	content, err := afero.ReadFile(a.fs, fileName)
	if err != nil {
		return fmt.Errorf("%w: cannot read %s: %w", common.ErrNotFound, fileName, err)
	}

	if err := yaml.Unmarshal(content, out); err != nil {
		return fmt.Errorf("%w: %s: %w", common.ErrParse, fileName, err)
	}

	return nil
}

type field struct {
	name    string
	present bool
}

func missingFields(fields ...field) error {
	var errs []error
	for _, f := range fields {
		if !f.present {
			errs = append(errs, fmt.Errorf("%w: %s", common.ErrMissingField, f.name))
		}
	}

	return errors.Join(errs...)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}

	return *s
}
