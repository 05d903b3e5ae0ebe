package keywords

import "porticus/internal/models"

// English, German, Dutch, Swedish, Danish, Norwegian.
func init() {
	register(models.Germanic, map[models.Sector][]string{
		models.Education: {
			"university", "universität", "universiteit", "universitet", "college", "school", "schule",
			"skole", "skola", "course", "kursus", "student", "teacher", "lehrer", "leraar", "lärare",
			"lærer", "tuition", "curriculum", "lecture", "education", "bildung", "onderwijs",
			"utbildning", "uddannelse", "utdanning", "academy", "akademie", "kindergarten",
		},
		models.Finance: {
			"bank", "banking", "loan", "mortgage", "credit", "account", "investment", "insurance",
			"finance", "darlehen", "kredit", "hypothek", "konto", "versicherung", "lening",
			"hypotheek", "rekening", "verzekering", "lån", "bolån", "försäkring", "forsikring",
			"investering", "geldanlage", "savings", "sparkasse",
		},
		models.Medical: {
			"hospital", "clinic", "doctor", "physician", "pharmacy", "medical", "medicine", "health",
			"dentist", "nurse", "krankenhaus", "klinik", "arzt", "apotheke", "gesundheit",
			"zahnarzt", "ziekenhuis", "huisarts", "apotheek", "sjukhus", "läkare", "apotek",
			"sygehus", "sykehus", "tandläkare", "tandlæge", "patient",
		},
		models.Retail: {
			"shop", "store", "retail", "shopping cart", "checkout", "discount", "on sale",
			"supermarket", "outlet", "buy now", "add to cart", "geschäft", "einkaufen",
			"warenkorb", "rabatt", "angebot", "winkelwagen", "korting", "butik", "varukorg",
			"indkøbskurv", "handlekurv", "tilbud", "boutique",
		},
		models.Tax: {
			"tax", "taxes", "vat number", "value added tax", "hmrc", "accountant", "bookkeeping",
			"tax return", "steuer", "steuerberater", "mehrwertsteuer", "finanzamt", "belasting",
			"btw nummer", "skatt", "skat", "revisor", "bokföring", "bogføring", "skatteverket",
		},
		models.Travel: {
			"travel", "trip", "hotel", "flight", "airport", "airline", "ticket", "booking",
			"vacation", "holiday", "tourism", "taxi", "cruise", "reise", "urlaub", "flughafen",
			"flug", "vakantie", "vliegveld", "vlucht", "resa", "flyg", "flygplats", "rejse",
			"ferie", "lufthavn", "hotell",
		},
		models.Vehicle: {
			"vehicle", "automobile", "cars", "car dealer", "truck", "motorcycle", "tyres",
			"autohaus", "fahrzeug", "kraftfahrzeug", "motorrad", "lkw", "reifen", "voertuig",
			"vrachtwagen", "fordon", "bilforhandler", "bilhandel", "køretøj", "kjøretøy",
			"lastbil", "garage", "dealership",
		},
	})
}
