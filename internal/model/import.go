package model

// UnknownPartNumber labels report entries whose draft had no part number.
const UnknownPartNumber = "Unknown"

// ImportItem is one decoded element of an import batch. Err is set when the
// element could not be decoded into a draft.
type ImportItem struct {
	Draft PartDraft
	Err   error
}

type ImportAction int

const (
	ImportSkipped ImportAction = iota
	ImportCreated
	ImportUpdated
)

// ImportOutcome is the result of reconciling a single item.
type ImportOutcome struct {
	PartNumber string
	Action     ImportAction
	Err        error
}

type ImportError struct {
	PartNumber string
	Error      string
}

type ImportReport struct {
	Success  int
	Failures int
	Created  int
	Updated  int
	Errors   []ImportError
}

// Merge folds one outcome into the report.
func (r ImportReport) Merge(o ImportOutcome) ImportReport {
	if o.Err != nil {
		r.Failures++
		r.Errors = append(r.Errors, ImportError{
			PartNumber: o.PartNumber,
			Error:      ReportMessage(o.Err),
		})
		return r
	}

	r.Success++
	switch o.Action {
	case ImportCreated:
		r.Created++
	case ImportUpdated:
		r.Updated++
	}
	return r
}
