package classify

import (
	"encoding/json"
	"testing"
)

func TestDecide_RecyclableLabels(t *testing.T) {
	recyclable := []Label{Cardboard, Glass, Metal, Paper, Plastic}

	for _, label := range recyclable {
		t.Run(string(label), func(t *testing.T) {
			decision, err := Decide(label, 0.9)
			if err != nil {
				t.Fatalf("Decide(%q) failed: %v", label, err)
			}
			if decision.Bin != Recyclable {
				t.Errorf("Expected bin %q, got %q", Recyclable, decision.Bin)
			}
			if decision.ServoAngle != 90 {
				t.Errorf("Expected servo angle 90, got %d", decision.ServoAngle)
			}
		})
	}
}

func TestDecide_Trash(t *testing.T) {
	decision, err := Decide(Trash, 0.55)
	if err != nil {
		t.Fatalf("Decide(trash) failed: %v", err)
	}

	if decision.Bin != Other {
		t.Errorf("Expected bin %q, got %q", Other, decision.Bin)
	}
	if decision.ServoAngle != 0 {
		t.Errorf("Expected servo angle 0, got %d", decision.ServoAngle)
	}
	if decision.Confidence != 0.55 {
		t.Errorf("Expected confidence 0.55, got %f", decision.Confidence)
	}
}

func TestMappingTables_Total(t *testing.T) {
	// Every label must reach a bin and every bin an angle.
	for _, label := range Labels() {
		bin, err := BinFor(label)
		if err != nil {
			t.Errorf("BinFor(%q) failed: %v", label, err)
			continue
		}
		if _, err := AngleFor(bin); err != nil {
			t.Errorf("AngleFor(%q) failed: %v", bin, err)
		}
	}
}

func TestBinFor_UnknownLabel(t *testing.T) {
	if _, err := BinFor(Label("banana")); err == nil {
		t.Error("Expected error for unmapped label")
	}
}

func TestDecide_UnknownLabel(t *testing.T) {
	if _, err := Decide(Label("banana"), 0.5); err == nil {
		t.Error("Expected error for unmapped label")
	}
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Label
		wantErr bool
	}{
		{name: "plastic", input: "plastic", want: Plastic},
		{name: "trash", input: "trash", want: Trash},
		{name: "unknown", input: "wood", wantErr: true},
		{name: "wrong case", input: "Plastic", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLabel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLabel(%q) failed: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestLabels_OrderMatchesModelOutput(t *testing.T) {
	expected := []Label{Cardboard, Glass, Metal, Paper, Plastic, Trash}
	got := Labels()

	if len(got) != len(expected) {
		t.Fatalf("Expected %d labels, got %d", len(expected), len(got))
	}
	for i := range expected {
		if got[i] != expected[i] {
			t.Errorf("Index %d: expected %q, got %q", i, expected[i], got[i])
		}
	}
}

func TestDecision_JSONShape(t *testing.T) {
	decision, err := Decide(Plastic, 0.81)
	if err != nil {
		t.Fatalf("Decide failed: %v", err)
	}

	data, err := json.Marshal(decision)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded["predicted_class"] != "plastic" {
		t.Errorf("Expected predicted_class 'plastic', got %v", decoded["predicted_class"])
	}
	if decoded["bin"] != "Recyclable" {
		t.Errorf("Expected bin 'Recyclable', got %v", decoded["bin"])
	}
	if decoded["servo_angle"] != float64(90) {
		t.Errorf("Expected servo_angle 90, got %v", decoded["servo_angle"])
	}
	if decoded["confidence"] != 0.81 {
		t.Errorf("Expected confidence 0.81, got %v", decoded["confidence"])
	}
}
