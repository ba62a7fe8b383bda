package utils

import (
	"fmt"
	"strings"
)

const planActionsSchema = `
{
  "actions": [
    {
      "title": "string",
      "description": "string",
      "how_to": "string",
      "monthly_savings": 50.00,
      "current_spending": 200.00,
      "recommended_spending": 150.00,
      "category": "string",
      "difficulty": "easy|medium|hard",
      "impact": "string",
      "priority": 1,
      "is_essential_cut": false,
      "related_merchants": ["string"]
    }
  ]
}`

func buildPlanActionsPrompt(target SavingsTargetPrompt, spending []MerchantSpend) string {
	var spendBuf strings.Builder
	for _, s := range spending {
		fmt.Fprintf(&spendBuf, "- %s: %s %s/month\n", s.Merchant, s.MonthlyAverage, target.Currency)
	}

	return fmt.Sprintf(`
You are a personal-finance coach. The user wants to save %s %s per month.
Their motivation: %q.

Their average monthly spending per merchant:
%s
Return **JSON only** that exactly matches the schema below. Suggest 3-8
concrete saving actions grounded in the spending above. "priority" orders
the actions starting at 1 (most impactful first). Mark an action
is_essential_cut=true only if it reduces essential spending (groceries,
utilities, transport). related_merchants must use merchant names from the
list above.

Schema (match keys exactly):
%s

Return JSON only. No comments, no markdown.
`, target.MonthlyTarget, target.Currency, target.Motivation, spendBuf.String(), planActionsSchema)
}

func buildCategorizePrompt(merchants []string, categories []string) string {
	return fmt.Sprintf(`
Assign each merchant to exactly one category slug.

Merchants:
- %s

Allowed category slugs:
- %s

Return **JSON only**: an object mapping each merchant name (verbatim) to one
slug from the allowed list. No comments, no markdown.
`, strings.Join(merchants, "\n- "), strings.Join(categories, "\n- "))
}
