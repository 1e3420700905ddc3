package di

// ComponentNames lists the container keys shared by accountkit packages.
type ComponentNames struct {
	Config  string
	Logger  string
	Metrics string
	Account string
	Ledger  string
}

// Names contains the container keys used by the bootstrap layer and the driver.
var Names = ComponentNames{
	Config:  "config",
	Logger:  "logger",
	Metrics: "metrics",
	Account: "account",
	Ledger:  "ledger",
}
