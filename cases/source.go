package cases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/courtlabs/courtroom-sim-api/config"
	"github.com/courtlabs/courtroom-sim-api/databases"
	"github.com/courtlabs/courtroom-sim-api/models"
)

// Source supplies the case definition a trial session runs against. A Load
// failure is setup-fatal: the session must never start without a valid case.
type Source interface {
	Load(ctx context.Context) (*models.Case, error)
}

// ErrUnknownSource is returned when the configured case source is unsupported.
var ErrUnknownSource = errors.New("unknown case source")

// New builds a Source from configuration.
func New(conf *config.Config, db databases.DatabaseHelper) (Source, error) {
	switch conf.CaseSource {
	case "file", "":
		return NewFileSource(conf.CaseFile), nil
	case "mongo":
		if db == nil {
			return nil, errors.New("mongo case source requires a database connection")
		}
		return &MongoSource{DB: databases.NewCaseDatabase(db), CaseNumber: conf.CaseNumber}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownSource, conf.CaseSource)
	}
}

// FileSource loads a case from a JSON file on disk
type FileSource struct {
	Path string
}

// NewFileSource returns a file-backed case source
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path}
}

// Load reads and validates the case file
func (s *FileSource) Load(ctx context.Context) (*models.Case, error) {
	b, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("case file not found at %s: %w", s.Path, err)
	}

	var trialCase models.Case
	if err := json.Unmarshal(b, &trialCase); err != nil {
		return nil, fmt.Errorf("failed to decode case file %s: %w", s.Path, err)
	}

	if err := Validate(&trialCase); err != nil {
		return nil, err
	}
	return &trialCase, nil
}

// MongoSource loads a case by case number from the cases collection
type MongoSource struct {
	DB         databases.CaseDatabase
	CaseNumber string
}

// Load fetches and validates the case document
func (s *MongoSource) Load(ctx context.Context) (*models.Case, error) {
	trialCase, err := s.DB.FindOne(ctx, bson.M{"case_number": s.CaseNumber})
	if err != nil {
		return nil, fmt.Errorf("failed to load case %s: %w", s.CaseNumber, err)
	}

	if err := Validate(trialCase); err != nil {
		return nil, err
	}
	return trialCase, nil
}

// Validate rejects case definitions missing the fields the simulation reads
func Validate(c *models.Case) error {
	switch {
	case c.Title == "":
		return errors.New("case is missing a title")
	case c.Summary == "":
		return errors.New("case is missing a summary")
	case c.Plaintiff.Lawyer == "":
		return errors.New("case is missing the plaintiff lawyer")
	case c.Defendant.Lawyer == "":
		return errors.New("case is missing the defendant lawyer")
	}
	return nil
}
