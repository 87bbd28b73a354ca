package util

func ValidateTransactionType(t string) bool {
	return t == "income" || t == "expense"
}

func ValidateFrequency(f string) bool {
	return f == "monthly" || f == "weekly" || f == "yearly"
}

func ValidateAmount(amount float64) bool {
	return amount >= 0
}
