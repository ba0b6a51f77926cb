package identity

// Fixed ordered name pools. Assignment is positional ((id-1) mod pool size),
// so reordering or shrinking a list changes every derived identity; append
// only.

var femaleFirstNames = []string{
	"Olivia", "Emma", "Charlotte", "Amelia", "Sophia",
	"Isabella", "Ava", "Mia", "Evelyn", "Luna",
	"Harper", "Camila", "Sofia", "Scarlett", "Elizabeth",
	"Eleanor", "Emily", "Chloe", "Violet", "Penelope",
	"Gianna", "Aria", "Abigail", "Ella", "Avery",
	"Hazel", "Nora", "Layla", "Lily", "Aurora",
	"Nova", "Ellie", "Mila", "Grace", "Willow",
	"Zoe", "Riley", "Stella", "Ivy", "Naomi",
}

var maleFirstNames = []string{
	"Liam", "Noah", "Oliver", "James", "Elijah",
	"William", "Henry", "Lucas", "Benjamin", "Theodore",
	"Mateo", "Levi", "Sebastian", "Daniel", "Jack",
	"Michael", "Alexander", "Owen", "Asher", "Samuel",
	"Ethan", "Leo", "Jackson", "Mason", "Ezra",
	"John", "Hudson", "Luca", "Aiden", "Joseph",
	"David", "Jacob", "Logan", "Luke", "Julian",
	"Gabriel", "Grayson", "Wyatt", "Matthew", "Maverick",
}

var neutralFirstNames = []string{
	"Alex", "Jordan", "Taylor", "Morgan", "Casey",
	"Riley", "Avery", "Quinn", "Rowan", "Sage",
	"Emerson", "Finley", "Skyler", "Dakota", "Reese",
	"Charlie", "Phoenix", "River", "Blake", "Cameron",
}

var lastNames = []string{
	"Smith", "Johnson", "Williams", "Brown", "Jones",
	"Garcia", "Miller", "Davis", "Rodriguez", "Martinez",
	"Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
	"Thomas", "Taylor", "Moore", "Jackson", "Martin",
	"Lee", "Perez", "Thompson", "White", "Harris",
	"Sanchez", "Clark", "Ramirez", "Lewis", "Robinson",
	"Walker", "Young", "Allen", "King", "Wright",
	"Scott", "Torres", "Nguyen", "Hill", "Flores",
	"Green", "Adams", "Nelson", "Baker", "Hall",
	"Rivera", "Campbell", "Mitchell", "Carter", "Roberts",
}
