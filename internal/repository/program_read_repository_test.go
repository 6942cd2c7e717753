package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aalf/program-service/shared/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listColumns() []string {
	return append(append([]string{}, programRowColumns...), "nivel_id", "nivel_nombre")
}

func TestListProgramsJoinsAcademicLevel(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProgramReadRepository(db, false)
	now := time.Now().UTC()
	start := time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows(listColumns()).
		AddRow(int64(3), int64(1), "Doctorado en Salud", "d", "1", int64(36), 3000.0, start, "activo", "salud", now, now, nil, int64(1), "Doctorado").
		AddRow(int64(5), int64(2), "Maestría en Datos", "d", "2", int64(24), 2000.0, start, "activo", "tecnologia", now, now, nil, int64(2), "Maestría").
		AddRow(int64(8), int64(9), "Huérfano", "d", "1", int64(12), 100.0, start, "activo", "otros", now, now, nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY n.nombre ASC")).WillReturnRows(rows)

	programs, err := repo.List(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, programs, 3)

	assert.Equal(t, "Doctorado", programs[0].AcademicLevel.Name)
	assert.Equal(t, "Maestría", programs[1].AcademicLevel.Name)
	assert.Equal(t, 2000.0, programs[1].Cost)
	assert.Equal(t, 24, programs[1].DurationMonths)
	assert.Nil(t, programs[2].AcademicLevel)
}

func TestListProgramsFiltersByArea(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProgramReadRepository(db, false)

	mock.ExpectQuery(regexp.QuoteMeta("AND p.area_conocimiento = $1")).
		WithArgs("salud").
		WillReturnRows(sqlmock.NewRows(listColumns()))

	programs, err := repo.List(context.Background(), "salud")
	require.NoError(t, err)
	assert.NotNil(t, programs)
	assert.Empty(t, programs)
}

func TestReadGetByIDHidesDeletedByDefault(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProgramReadRepository(db, false)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND deleted_at IS NULL")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(programRowColumns))

	_, err := repo.GetByID(context.Background(), 4)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestReadGetByIDWithDeleted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewProgramReadRepository(db, true)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("FROM programas WHERE id = $1")).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows(programRowColumns).
			AddRow(int64(4), int64(1), "Programa", "d", "1", int64(12), 100.0, now, "activo", "salud", now, now, now))

	program, err := repo.GetByID(context.Background(), 4)
	require.NoError(t, err)
	require.NotNil(t, program.DeletedAt)
	assert.True(t, program.IsDeleted())
}

func TestListAcademicLevels(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAcademicLevelReadRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM niveles_academicos ORDER BY nombre ASC")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nombre"}).
			AddRow(int64(1), "Doctorado").
			AddRow(int64(2), "Maestría"))

	levels, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, levels, 2)
	assert.Equal(t, "Doctorado", levels[0].Name)
}

func TestMigrate(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS niveles_academicos")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
}
