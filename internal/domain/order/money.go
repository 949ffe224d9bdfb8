// internal/domain/order/money.go
package order

import "fmt"

// FormatBRL renders centavos as "R$ 1.234,56" (pt-BR grouping).
func FormatBRL(centavos int64) string {
	neg := centavos < 0
	if neg {
		centavos = -centavos
	}

	reais := centavos / 100
	cents := centavos % 100

	// group thousands with dots
	digits := fmt.Sprintf("%d", reais)
	var grouped []byte
	for i, d := range []byte(digits) {
		if i > 0 && (len(digits)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, d)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%02d", sign, grouped, cents)
}
