package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// Business
	&Product{},
	&Transaction{},
	&Expense{},
}
