package submission

import "fmt"

// Stages reported in StageError.
const (
	StageUpload   = "upload"
	StageMirror   = "mirror"
	StageFeed     = "feed"
	StageNotify   = "notify"
	StageRender   = "render"
	StageArtifact = "artifact"
)

// StageError is a non-fatal failure of one collaborator. The report it
// belongs to is already stored, or is stored without that piece.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StoreError means the report was not persisted.
type StoreError struct {
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store: %v", e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }
