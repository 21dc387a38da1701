package main

import (
	"fmt"
	"strings"

	"github.com/Simplici0/padaria/internal/store"
)

// formatQuoteText renders a saved quote as plain text for sharing with a
// customer. Values come from the stored snapshot.
func formatQuoteText(q store.Quote) string {
	res := q.Result.Rounded()
	cur := q.Currency

	var b strings.Builder
	fmt.Fprintf(&b, "Orçamento: %s\n", q.Title)
	fmt.Fprintf(&b, "Data: %s\n", q.CreatedAt.Format("02/01/2006 15:04"))
	if q.Notes != "" {
		fmt.Fprintf(&b, "Observações: %s\n", q.Notes)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Preço sugerido: %.2f %s\n", res.SuggestedPrice, cur)
	fmt.Fprintf(&b, "Preço por kg: %.2f %s\n", res.PricePerKilogram, cur)
	b.WriteString("\n")
	b.WriteString("Custos:\n")
	fmt.Fprintf(&b, "- Ingredientes: %.2f %s\n", q.Input.RecipeCost, cur)
	fmt.Fprintf(&b, "- Embalagem: %.2f %s\n", q.Input.PackagingCost, cur)
	fmt.Fprintf(&b, "- Outros: %.2f %s\n", q.Input.ExtraCosts, cur)
	fmt.Fprintf(&b, "- Total: %.2f %s\n", res.TotalCost, cur)
	fmt.Fprintf(&b, "- Por kg: %.2f %s\n", res.CostPerKilogram, cur)
	b.WriteString("\n")
	b.WriteString("Margem:\n")
	fmt.Fprintf(&b, "- Lucro desejado: %.2f%%\n", q.Input.DesiredProfitPercent)
	fmt.Fprintf(&b, "- Lucro: %.2f %s\n", res.ProfitAmount, cur)
	fmt.Fprintf(&b, "- Peso final: %.0f g\n", q.Input.FinalWeightGrams)

	return b.String()
}
