// internal/domain/exercise.go
package domain

// AvailableExercise is an entry of the exercise catalog the generator draws from.
// The catalog is seed data and read-only at runtime.
type AvailableExercise struct {
	ID               string  `bson:"_id" json:"id" yaml:"-"`
	Name             string  `bson:"name" json:"name" yaml:"name"`
	MainMuscleGroup  string  `bson:"mainMuscleGroup" json:"mainMuscleGroup" yaml:"main_muscle_group"` // e.g., "Chest", "Back"
	PrimaryEquipment string  `bson:"primaryEquipment" json:"primaryEquipment" yaml:"primary_equipment"`
	GripStyle        *string `bson:"gripStyle,omitempty" json:"gripStyle,omitempty" yaml:"grip_style,omitempty"`
}

// EquipmentNotes is the human readable equipment/grip summary stored on generated exercises.
func (e *AvailableExercise) EquipmentNotes() string {
	grip := "Any"
	if e.GripStyle != nil && *e.GripStyle != "" {
		grip = *e.GripStyle
	}
	return "Equipment: " + e.PrimaryEquipment + ", Grip: " + grip
}
