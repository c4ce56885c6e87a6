package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"mutt/internal/store"
)

func TestRecordRating_RollsBackOnInsertError(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ratings").WillReturnError(errors.New("disk I/O error"))
	mock.ExpectRollback()

	c := NewWithDB(db)
	if _, err := c.RecordRating(context.Background(), store.RatingInput{TokenID: 7, Voter: "0xa", Score: 5}); err == nil {
		t.Fatal("expected error")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestRecordRating_UpdatesRoundedAggregate(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO ratings").
		WithArgs(int64(7), "0xa", int64(4)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count", "avg"}).AddRow(int64(3), 4.666666))
	mock.ExpectExec("UPDATE mutts SET avg_rating").
		WithArgs(4.67, int64(3), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c := NewWithDB(db)
	stats, err := c.RecordRating(context.Background(), store.RatingInput{TokenID: 7, Voter: "0xA", Score: 4})
	if err != nil {
		t.Fatalf("RecordRating: %v", err)
	}
	if stats.AvgRating != 4.67 || stats.TotalReviews != 3 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
