package packing

import "testing"

func TestQuantity(t *testing.T) {
	tests := []struct {
		name   string
		style  PackStyle
		perDay float64
		days   int
		want   int
	}{
		{"light shirts 5 days", PackLight, 1, 5, 3},     // 1 + 1.75 = 2.75
		{"light pants 5 days", PackLight, 0.5, 5, 2},    // 1 + 0.875
		{"medium shirts 1 day", PackMedium, 1, 1, 2},    // 1 + 0.6
		{"medium pants 1 day", PackMedium, 0.5, 1, 1},   // 1 + 0.3
		{"medium pants 5 days", PackMedium, 0.5, 5, 3},  // 1 + 1.5 = 2.5 rounds up
		{"heavy shirts 5 days", PackHeavy, 1, 5, 7},     // 2 + 5
		{"heavy pants 5 days", PackHeavy, 0.5, 5, 5},    // 2 + 2.5 = 4.5 rounds up
		{"light shirts 20 days", PackLight, 1, 20, 8},   // 1 + 7
		{"heavy shirts 1 day", PackHeavy, 1, 1, 3},      // 2 + 1
		{"zero rate floors", PackLight, 0, 10, 1},       // never below 1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Quantity(tt.style, tt.perDay, tt.days); got != tt.want {
				t.Errorf("Quantity(%s, %v, %d) = %d, want %d", tt.style, tt.perDay, tt.days, got, tt.want)
			}
		})
	}
}

func TestQuantity_Monotonic(t *testing.T) {
	styles := []PackStyle{PackLight, PackMedium, PackHeavy}
	rates := []float64{RatePants, RateTShirts}

	for _, rate := range rates {
		for _, style := range styles {
			prev := 0
			for days := 1; days <= 90; days++ {
				q := Quantity(style, rate, days)
				if q < 1 {
					t.Fatalf("Quantity(%s, %v, %d) = %d, below floor", style, rate, days, q)
				}
				if q < prev {
					t.Fatalf("Quantity(%s, %v, %d) = %d decreased from %d", style, rate, days, q, prev)
				}
				prev = q
			}
		}

		for days := 1; days <= 90; days++ {
			light := Quantity(PackLight, rate, days)
			medium := Quantity(PackMedium, rate, days)
			heavy := Quantity(PackHeavy, rate, days)
			if !(heavy >= medium && medium >= light) {
				t.Fatalf("days=%d rate=%v: heavy=%d medium=%d light=%d not ordered", days, rate, heavy, medium, light)
			}
		}
	}
}

func TestShoeQuantity(t *testing.T) {
	if got := ShoeQuantity(PackHeavy); got != 2 {
		t.Errorf("ShoeQuantity(heavy) = %d, want 2", got)
	}
	for _, s := range []PackStyle{PackLight, PackMedium} {
		if got := ShoeQuantity(s); got != 1 {
			t.Errorf("ShoeQuantity(%s) = %d, want 1", s, got)
		}
	}
}
