package repository

import (
	"context"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Emmett6401/bioHealthScheduleManager/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func subjectRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"code", "name", "course_code", "total_hours", "day_of_week", "is_biweekly", "week_offset",
		"main_instructor", "assistant_instructor", "reserve_instructor", "sort_order", "created_at", "updated_at",
	})
}

func TestSubjectRepositoryListByCourse(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	rows := subjectRows().
		AddRow("PY", "Python", "kdt11", 24, nil, false, 0, "I-01", "", "I-02", 1, time.Now(), time.Now()).
		AddRow("SQL", "Databases", "kdt11", 16, 1, false, 0, "I-03", "", "", 2, time.Now(), time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM subjects WHERE course_code = \$1 ORDER BY sort_order ASC, code ASC`).
		WithArgs("kdt11").
		WillReturnRows(rows)

	subjects, err := repo.ListByCourse(context.Background(), "kdt11")
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "PY", subjects[0].Code)
	assert.Nil(t, subjects[0].DayOfWeek)
	require.NotNil(t, subjects[1].DayOfWeek)
	assert.Equal(t, 1, *subjects[1].DayOfWeek)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	rows := subjectRows().
		AddRow("PY", "Python", "kdt11", 24, nil, false, 0, "I-01", "", "", 1, time.Now(), time.Now())
	mock.ExpectQuery(`SELECT (.+) FROM subjects WHERE 1=1 AND course_code = \$1 ORDER BY sort_order ASC, code ASC LIMIT 50 OFFSET 0`).
		WithArgs("kdt11").
		WillReturnRows(rows)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM subjects WHERE 1=1 AND course_code = \$1`).
		WithArgs("kdt11").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	subjects, total, err := repo.List(context.Background(), models.SubjectFilter{CourseCode: "kdt11"})
	require.NoError(t, err)
	assert.Len(t, subjects, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryCreateAndDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectExec("INSERT INTO subjects").
		WithArgs("ML", "Machine Learning", "kdt11", 64, nil, false, 0, "I-01", "", "I-02", 3, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Create(context.Background(), &models.Subject{
		Code: "ML", Name: "Machine Learning", CourseCode: "kdt11", TotalHours: 64,
		MainInstructor: "I-01", ReserveInstructor: "I-02", SortOrder: 3,
	})
	require.NoError(t, err)

	mock.ExpectExec(`DELETE FROM subjects WHERE code = \$1`).
		WithArgs("ML").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Delete(context.Background(), "ML"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
