package cases_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/courtlabs/courtroom-sim-api/cases"
	"github.com/courtlabs/courtroom-sim-api/config"
	"github.com/courtlabs/courtroom-sim-api/databases"
	"github.com/courtlabs/courtroom-sim-api/databases/mocks"
	"github.com/courtlabs/courtroom-sim-api/models"
)

const validCaseJSON = `{
	"case_number": "case-001",
	"title": "State v. Doe",
	"summary": "The defendant is accused of stealing a vehicle.",
	"legal_system": "common law",
	"plaintiff": {"name": "The State", "lawyer": "Sarah Chen"},
	"defendant": {"name": "John Doe", "lawyer": "Marcus Faye"},
	"evidence": [{"title": "CCTV footage", "description": "Parking lot camera"}],
	"witnesses": [{"name": "Alice Park", "testimony_summary": "Saw the defendant near the lot"}]
}`

func writeCaseFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "case.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileSource_Load(t *testing.T) {
	src := cases.NewFileSource(writeCaseFile(t, validCaseJSON))

	trialCase, err := src.Load(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "State v. Doe", trialCase.Title)
	assert.Equal(t, "Sarah Chen", trialCase.Plaintiff.Lawyer)
	assert.Equal(t, "Marcus Faye", trialCase.Defendant.Lawyer)
	assert.Len(t, trialCase.Witnesses, 1)
}

func TestFileSource_LoadMissingFile(t *testing.T) {
	src := cases.NewFileSource(filepath.Join(t.TempDir(), "nope.json"))

	trialCase, err := src.Load(context.Background())
	assert.Nil(t, trialCase)
	assert.ErrorContains(t, err, "case file not found")
}

func TestFileSource_LoadMalformedJSON(t *testing.T) {
	src := cases.NewFileSource(writeCaseFile(t, `{"title": `))

	trialCase, err := src.Load(context.Background())
	assert.Nil(t, trialCase)
	assert.ErrorContains(t, err, "failed to decode case file")
}

func TestFileSource_LoadRejectsIncompleteCase(t *testing.T) {
	src := cases.NewFileSource(writeCaseFile(t, `{"title": "State v. Doe", "summary": "s"}`))

	trialCase, err := src.Load(context.Background())
	assert.Nil(t, trialCase)
	assert.ErrorContains(t, err, "plaintiff lawyer")
}

func TestMongoSource_Load(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelper databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelper = &mocks.SingleResultHelper{}

	srHelper.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(nil).Run(func(args mock.Arguments) {
		arg := args.Get(0).(**models.Case)
		(*arg).Title = "State v. Doe"
		(*arg).Summary = "summary"
		(*arg).Plaintiff = models.Party{Name: "The State", Lawyer: "Sarah Chen"}
		(*arg).Defendant = models.Party{Name: "John Doe", Lawyer: "Marcus Faye"}
	})

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", mock.Anything, bson.M{"case_number": "case-001"}).
		Return(srHelper)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "cases").
		Return(collectionHelper)

	src := &cases.MongoSource{DB: databases.NewCaseDatabase(dbHelper), CaseNumber: "case-001"}

	trialCase, err := src.Load(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "State v. Doe", trialCase.Title)
}

func TestMongoSource_LoadNotFound(t *testing.T) {
	var dbHelper databases.DatabaseHelper
	var collectionHelper databases.CollectionHelper
	var srHelper databases.SingleResultHelper

	dbHelper = &mocks.DatabaseHelper{}
	collectionHelper = &mocks.CollectionHelper{}
	srHelper = &mocks.SingleResultHelper{}

	srHelper.(*mocks.SingleResultHelper).
		On("Decode", mock.Anything).
		Return(errors.New("mongo: no documents in result"))

	collectionHelper.(*mocks.CollectionHelper).
		On("FindOne", mock.Anything, mock.Anything).
		Return(srHelper)

	dbHelper.(*mocks.DatabaseHelper).
		On("Collection", "cases").
		Return(collectionHelper)

	src := &cases.MongoSource{DB: databases.NewCaseDatabase(dbHelper), CaseNumber: "case-404"}

	trialCase, err := src.Load(context.Background())
	assert.Nil(t, trialCase)
	assert.ErrorContains(t, err, "failed to load case case-404")
}

func TestNewSelectsSource(t *testing.T) {
	fileSrc, err := cases.New(&config.Config{CaseSource: "file", CaseFile: "cases/case-001.json"}, nil)
	assert.NoError(t, err)
	assert.IsType(t, &cases.FileSource{}, fileSrc)

	_, err = cases.New(&config.Config{CaseSource: "mongo"}, nil)
	assert.ErrorContains(t, err, "requires a database connection")

	_, err = cases.New(&config.Config{CaseSource: "carrier-pigeon"}, nil)
	assert.ErrorIs(t, err, cases.ErrUnknownSource)
}
