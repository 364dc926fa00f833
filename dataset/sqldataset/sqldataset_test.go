package sqldataset

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pbanos/sapling/dataset"
	"github.com/pbanos/sapling/feature"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAdapter struct {
	db *sql.DB
}

func (ma *mockAdapter) DB() *sql.DB {
	return ma.db
}

func (ma *mockAdapter) ColumnName(name string) (string, error) {
	return QuoteIdentifier(name)
}

func (ma *mockAdapter) Placeholder(n int) string {
	return fmt.Sprintf("$%d", n)
}

func newMock(t *testing.T) (Adapter, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &mockAdapter{db}, mock
}

func metadata(t *testing.T, classifiers ...feature.Classifier) *feature.Metadata {
	m, err := feature.NewMetadata(feature.Attributes("A", "B"), classifiers)
	require.NoError(t, err)
	return m
}

func TestRead(t *testing.T) {
	a, mock := newMock(t)
	rows := sqlmock.NewRows([]string{"class", "A", "B"}).
		AddRow("Yes", true, false).
		AddRow([]byte("No"), int64(0), int64(1)).
		AddRow("Yes", "true", []byte("f"))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT "class", "A", "B" FROM "instances"`)).WillReturnRows(rows)

	s, err := Read(context.Background(), a, "instances", "class", metadata(t), dataset.New)
	require.NoError(t, err)
	require.Equal(t, 3, s.Count())
	instances := s.Instances()
	assert.Equal(t, feature.Classifier("No"), instances[1].Classifier())
	v, err := instances[1].ValueFor("B")
	require.NoError(t, err)
	assert.True(t, v)
	v, err = instances[2].ValueFor("B")
	require.NoError(t, err)
	assert.False(t, v)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReadRejectsInvalidRows(t *testing.T) {
	cases := map[string][]interface{}{
		"non boolean integer": {"Yes", int64(2), true},
		"non boolean text":    {"Yes", "maybe", true},
		"missing value":       {"Yes", nil, true},
		"undeclared label":    {"Maybe", true, true},
	}
	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			a, mock := newMock(t)
			rows := sqlmock.NewRows([]string{"class", "A", "B"}).AddRow(row[0], row[1], row[2])
			mock.ExpectQuery("SELECT").WillReturnRows(rows)
			_, err := Read(context.Background(), a, "instances", "class", metadata(t, "Yes", "No"), dataset.New)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "row 1")
		})
	}
}

func TestReadQueryError(t *testing.T) {
	a, mock := newMock(t)
	mock.ExpectQuery("SELECT").WillReturnError(fmt.Errorf("no such table"))
	_, err := Read(context.Background(), a, "instances", "class", metadata(t), dataset.New)
	assert.Error(t, err)
}

func TestReadRejectsInvalidIdentifiers(t *testing.T) {
	a, _ := newMock(t)
	_, err := Read(context.Background(), a, `bad"table`, "class", metadata(t), dataset.New)
	assert.Error(t, err)
	_, err = Read(context.Background(), a, "instances", "", metadata(t), dataset.New)
	assert.Error(t, err)
}

func TestWrite(t *testing.T) {
	a, mock := newMock(t)
	s := dataset.New([]*dataset.Instance{
		dataset.NewInstance(map[feature.Attribute]bool{"A": true, "B": false}, "Yes"),
		dataset.NewInstance(map[feature.Attribute]bool{"A": false, "B": true}, "No"),
	})
	insert := regexp.QuoteMeta(`INSERT INTO "instances" ("class", "A", "B") VALUES ($1, $2, $3)`)
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`CREATE TABLE IF NOT EXISTS "instances" ("class" TEXT NOT NULL, "A" BOOLEAN NOT NULL, "B" BOOLEAN NOT NULL)`)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(insert).WithArgs("Yes", true, false).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(insert).WithArgs("No", false, true).WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	require.NoError(t, Write(context.Background(), a, "instances", "class", s, metadata(t)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWriteRollsBackOnError(t *testing.T) {
	a, mock := newMock(t)
	s := dataset.New([]*dataset.Instance{
		dataset.NewInstance(map[feature.Attribute]bool{"A": true, "B": false}, "Yes"),
	})
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO").WillReturnError(fmt.Errorf("disk full"))
	mock.ExpectRollback()

	assert.Error(t, Write(context.Background(), a, "instances", "class", s, metadata(t)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuoteIdentifier(t *testing.T) {
	q, err := QuoteIdentifier("my column")
	require.NoError(t, err)
	assert.Equal(t, `"my column"`, q)
	_, err = QuoteIdentifier(`a"b`)
	assert.Error(t, err)
	_, err = QuoteIdentifier("")
	assert.Error(t, err)
}
