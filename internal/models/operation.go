package models

// OperationType identifies the kind of write captured in the offline queue.
// The set is closed: the reconciler rejects anything else.
type OperationType string

const (
	OpTreatment        OperationType = "treatment"
	OpMedicineDispense OperationType = "medicine_dispense"
	OpStudent          OperationType = "student"
	OpPersonnel        OperationType = "personnel"
	OpMedicine         OperationType = "medicine"
	OpMaritimeDocument OperationType = "maritime_document"
)

// OperationTypes returns all recognized operation types in a stable order.
func OperationTypes() []OperationType {
	return []OperationType{
		OpTreatment,
		OpMedicineDispense,
		OpStudent,
		OpPersonnel,
		OpMedicine,
		OpMaritimeDocument,
	}
}

// Valid reports whether t is one of the recognized operation types.
func (t OperationType) Valid() bool {
	switch t {
	case OpTreatment, OpMedicineDispense, OpStudent, OpPersonnel, OpMedicine, OpMaritimeDocument:
		return true
	}
	return false
}
