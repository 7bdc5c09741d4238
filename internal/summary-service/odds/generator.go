package odds

import (
	"fmt"
	"math/rand"
)

// Faixa das odds de exibição. Valores não vêm de mercado real.
const (
	oddMin = 1.50
	oddMax = 3.00
)

// OverUnder é o par de preços exibido junto do resumo de uma partida.
type OverUnder struct {
	Over  string `json:"over"`
	Under string `json:"under"`
}

// Generate sorteia um par de odds independentes em [1.50, 3.00],
// formatadas com duas casas decimais.
func Generate() OverUnder {
	return OverUnder{
		Over:  price(),
		Under: price(),
	}
}

func price() string {
	return fmt.Sprintf("%.2f", oddMin+rand.Float64()*(oddMax-oddMin))
}
