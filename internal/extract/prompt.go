package extract

import "encoding/json"

// BuildReceiptPrompt returns the extraction instruction for receipt and
// invoice images. The output shape is fixed; any deviation is treated as an
// extraction failure by the caller.
func BuildReceiptPrompt(categories []string) string {
	cats, _ := json.Marshal(categories)
	return `You are a financial assistant that extracts transaction details from receipt images.

Available categories: ` + string(cats) + `

Analyze the provided receipt/invoice image. Extract the following and respond with ONLY valid JSON, no markdown:
{
  "description": "Store name or very short summary of the purchase",
  "type": "Income" or "Expense",
  "items": [
    { "name": "item name", "quantity": 1, "unit_price": 100, "category": "one of the available categories" }
  ]
}

Rules:
- Receipts are usually "Expense". Only use "Income" if it is explicitly an invoice or payment-received document.
- If multiple items are listed, extract each one with its price and quantity.
- Do not put tax or tip lines in the items array; if itemization fails entirely, use the grand total as a single item.
- Always pick the most appropriate category from the available list for each item.`
}

// BuildUtterancePrompt returns the extraction instruction for transcribed
// speech.
func BuildUtterancePrompt(categories []string) string {
	cats, _ := json.Marshal(categories)
	return `You are a financial assistant that extracts transaction details from natural speech.

Available categories: ` + string(cats) + `

Extract the following and respond with ONLY valid JSON, no markdown:
{
  "description": "short title for the overall transaction",
  "type": "Income" or "Expense",
  "items": [
    { "name": "item name", "quantity": 1, "unit_price": 100, "category": "one of the available categories" }
  ]
}

Rules:
- "spent", "paid", "bought", "costs" mean Expense; "received", "earned", "got paid", "sale", "salary" mean Income
- If multiple items are mentioned, list each separately with its price
- If only a total is mentioned (e.g. "spent 450 on food"), create ONE item with that total as unit_price and quantity 1
- Always estimate unit_price as a positive number
- Always pick category from the available list`
}
