package models

// PatientKind tags which table a PatientRef points into.
type PatientKind string

const (
	PatientStudent   PatientKind = "student"
	PatientPersonnel PatientKind = "personnel"
)

// Valid reports whether k is a recognized patient kind.
func (k PatientKind) Valid() bool {
	return k == PatientStudent || k == PatientPersonnel
}

// PatientRef is a tagged reference to either a student or a personnel
// record. Treatments, dispense logs and medical records are polymorphic
// over the two; the tag decides which table the id resolves against.
type PatientRef struct {
	Kind PatientKind `json:"kind"`
	ID   int64       `json:"id"`
}

// Valid reports whether the reference carries a known kind and a usable id.
func (r PatientRef) Valid() bool {
	return r.Kind.Valid() && r.ID > 0
}
