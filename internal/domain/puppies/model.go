package puppies

import "time"

// Sex del cachorro.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Litter es la camada. BirthDate es inmutable una vez fijada;
// sin fecha no hay protocolos ni día de vida.
type Litter struct {
	ID   string
	Name string

	DamName  string
	SireName string

	BirthDate *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Puppy pertenece a exactamente una camada.
type Puppy struct {
	ID       string
	LitterID string

	Name  string
	Sex   Sex
	Color string

	// BirthWeight en gramos; opcional, solo lo usa el hito de duplicación.
	BirthWeight *float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
