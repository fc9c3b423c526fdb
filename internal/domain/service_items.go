package domain

// DefaultServiceNames is the built-in set of offerings sold without physical
// stock. It seeds the sales.service_items setting on first boot; the runtime
// list is read from settings so the backend and any UI share one source.
var DefaultServiceNames = []string{
	"Internet Time (per hour)",
	"Photocopying B/W",
	"Photocopying Colour",
	"Printing B/W",
	"Printing Colour",
	"Software Installation",
	"Data Recovery",
	"Network Setup",
	"KRA iTax",
	"eCitizen",
	"NTSA Services",
	"Social Health Authority (SHA)",
	"Printing Services",
	"Internet Access",
	"Scanning Services",
	"Passport Application",
	"Passport Photo",
	"KRA PIN retrieval",
	"Business Registration",
}
