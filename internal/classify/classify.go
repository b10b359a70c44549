// Package classify maps predicted waste labels to a bin and a simulated
// servo angle. The label set is fixed; extending it requires an explicit
// entry in the mapping tables below.
package classify

import "fmt"

// Label is one of the six waste categories the model is trained on.
type Label string

const (
	Cardboard Label = "cardboard"
	Glass     Label = "glass"
	Metal     Label = "metal"
	Paper     Label = "paper"
	Plastic   Label = "plastic"
	Trash     Label = "trash"
)

// Bin is the routing decision for a classified item.
type Bin string

const (
	Recyclable Bin = "Recyclable"
	Other      Bin = "Other"
)

// Angle is the simulated servo deflection in degrees. No physical
// actuator exists; the value only drives the visualization.
type Angle int

const (
	AngleRecyclable Angle = 90
	AngleOther      Angle = 0
)

// labels holds the six classes in model output index order.
var labels = []Label{Cardboard, Glass, Metal, Paper, Plastic, Trash}

// labelToBin and binToAngle are total over their domains. Every label must
// have a bin and every bin an angle; Decide fails loudly on a gap instead
// of defaulting.
var labelToBin = map[Label]Bin{
	Cardboard: Recyclable,
	Glass:     Recyclable,
	Metal:     Recyclable,
	Paper:     Recyclable,
	Plastic:   Recyclable,
	Trash:     Other,
}

var binToAngle = map[Bin]Angle{
	Recyclable: AngleRecyclable,
	Other:      AngleOther,
}

// Labels returns the class set in model output index order.
func Labels() []Label {
	out := make([]Label, len(labels))
	copy(out, labels)
	return out
}

// ParseLabel validates a raw class string against the fixed label set.
func ParseLabel(s string) (Label, error) {
	for _, l := range labels {
		if string(l) == s {
			return l, nil
		}
	}
	return "", fmt.Errorf("unknown class label %q", s)
}

// BinFor returns the bin for a label, or an error for a label outside the
// mapping table.
func BinFor(label Label) (Bin, error) {
	bin, ok := labelToBin[label]
	if !ok {
		return "", fmt.Errorf("no bin mapping for label %q", label)
	}
	return bin, nil
}

// AngleFor returns the servo angle for a bin.
func AngleFor(bin Bin) (Angle, error) {
	angle, ok := binToAngle[bin]
	if !ok {
		return 0, fmt.Errorf("no servo angle mapping for bin %q", bin)
	}
	return angle, nil
}

// Decision is the complete result for one classified image.
type Decision struct {
	PredictedClass string  `json:"predicted_class"`
	Confidence     float64 `json:"confidence"`
	Bin            Bin     `json:"bin"`
	ServoAngle     Angle   `json:"servo_angle"`
}

// Decide composes the label->bin and bin->angle tables into a Decision.
func Decide(label Label, confidence float64) (Decision, error) {
	bin, err := BinFor(label)
	if err != nil {
		return Decision{}, err
	}
	angle, err := AngleFor(bin)
	if err != nil {
		return Decision{}, err
	}
	return Decision{
		PredictedClass: string(label),
		Confidence:     confidence,
		Bin:            bin,
		ServoAngle:     angle,
	}, nil
}
