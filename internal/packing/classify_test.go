package packing

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		destination string
		want        Classes
	}{
		{"Bali, Indonesia", Classes{Tropical: true}},
		{"HAWAII", Classes{Tropical: true}},
		{"Cancún, Mexico", Classes{Tropical: true}},
		{"Reykjavik, Iceland", Classes{Cold: true}},
		{"Oslo, Norway", Classes{Cold: true}},
		{"New York, NY, USA", Classes{Urban: true}},
		{"new  york", Classes{}}, // substring match, not token match
		{"Paris, France", Classes{Urban: true}},
		{"Tokyo then Thailand", Classes{Tropical: true, Urban: true}},
		{"Stockholm, Sweden via London", Classes{Cold: true, Urban: true}},
		{"Berlin, Germany", Classes{}},
		{"", Classes{}},
	}

	for _, tt := range tests {
		t.Run(tt.destination, func(t *testing.T) {
			if got := Classify(tt.destination); got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.destination, got, tt.want)
			}
		})
	}
}
