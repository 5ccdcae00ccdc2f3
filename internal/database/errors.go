package database

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrCheckViolation      = errors.New("check constraint violation")
	ErrInvalidInput        = errors.New("invalid input")
)

// PostgreSQL SQLSTATE codes.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
	codeNotNullViolation    = "23502"
	codeInvalidText         = "22P02"
	codeInvalidDatetime     = "22007"
	codeDatetimeOverflow    = "22008"
)

// Error pairs a sentinel with the driver error that produced it.
type Error struct {
	Sentinel error
	Cause    error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Sentinel.Error()
	}
	return e.Sentinel.Error() + ": " + e.Cause.Error()
}

func (e *Error) Is(target error) bool {
	return target == e.Sentinel
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// MapError translates driver errors into the package sentinels. Unknown errors are returned unchanged.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return &Error{Sentinel: ErrNotFound, Cause: err}
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeUniqueViolation:
			return &Error{Sentinel: ErrDuplicateKey, Cause: err}
		case codeForeignKeyViolation:
			return &Error{Sentinel: ErrForeignKeyViolation, Cause: err}
		case codeCheckViolation, codeNotNullViolation:
			return &Error{Sentinel: ErrCheckViolation, Cause: err}
		case codeInvalidText, codeInvalidDatetime, codeDatetimeOverflow:
			return &Error{Sentinel: ErrInvalidInput, Cause: err}
		}
	}

	return err
}
