package domain

// Unit is the unit of measure for an invoice item.
type Unit string

const (
	UnitPieces    Unit = "PCS"
	UnitKilograms Unit = "KGS"
	UnitLitres    Unit = "LTR"
)

// Valid reports whether u is one of the supported units.
func (u Unit) Valid() bool {
	switch u {
	case UnitPieces, UnitKilograms, UnitLitres:
		return true
	}
	return false
}

// Jurisdiction classifies a supply as within the issuer's state or across states.
type Jurisdiction string

const (
	IntraState Jurisdiction = "intra_state"
	InterState Jurisdiction = "inter_state"
)
