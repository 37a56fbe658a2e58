package domain

import "errors"

var (
	ErrNoFile              = errors.New("no file uploaded")
	ErrUnsupportedFileType = errors.New("only excel/csv files are allowed")
	ErrFileTooLarge        = errors.New("file exceeds the upload size limit")
	ErrDecodeFailed        = errors.New("invalid excel/csv file")

	ErrDatasetNotFound = errors.New("dataset not found")
	ErrNotOwner        = errors.New("not authorized to access this dataset")

	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)
