package analysis

// topicEntry pairs a topic name with detection keywords. A slice (not a
// map) keeps detection order deterministic: broader topics are listed
// before their sub-topics.
type topicEntry struct {
	name     string
	keywords []string
}

var topicKeywords = []topicEntry{
	{"Algebra", []string{"algebra", "equation", "variable", "expression", "polynomial", "factor", "solve for x",
		"linear", "quadratic", "inequality", "system of equations", "substitution"}},
	{"Linear Equations", []string{"linear equation", "slope", "intercept", "y = mx + b", "graph the line",
		"solve for x", "one variable"}},
	{"Expressions & Simplification", []string{"simplify", "combine like terms", "distribute", "expression",
		"expand", "foil"}},
	{"Inequalities", []string{"inequality", "greater than", "less than", "number line", "≥", "≤", ">", "<"}},
	{"Fractions", []string{"fraction", "numerator", "denominator", "mixed number", "improper fraction",
		"common denominator", "reduce", "simplify fraction"}},
	{"Decimals", []string{"decimal", "decimal point", "tenths", "hundredths", "convert decimal"}},
	{"Ratios & Proportions", []string{"ratio", "proportion", "rate", "unit rate", "cross multiply",
		"scale factor"}},
	{"Geometry", []string{"geometry", "shape", "angle", "triangle", "circle", "polygon", "congruent",
		"similar", "parallel", "perpendicular"}},
	{"Angles & Triangles", []string{"angle", "triangle", "degree", "acute", "obtuse", "right angle",
		"isosceles", "equilateral", "scalene", "pythagorean"}},
	{"Area & Perimeter", []string{"area", "perimeter", "surface area", "volume", "square units",
		"length times width"}},
	{"Word Problems", []string{"word problem", "story problem", "how many", "how much", "total",
		"difference", "altogether"}},
	{"Rate Problems", []string{"rate", "speed", "distance", "time", "miles per hour", "km per hour"}},
	{"Age Problems", []string{"age", "years old", "how old", "older than", "younger than"}},
	{"Number Sense", []string{"number", "place value", "rounding", "estimation", "mental math",
		"arithmetic", "calculation"}},
	{"Exponents", []string{"exponent", "power", "squared", "cubed", "base"}},
	{"Probability", []string{"probability", "chance", "likely", "outcome", "event", "random"}},
	{"Statistics", []string{"mean", "median", "mode", "range", "average", "data", "graph", "chart"}},
}

// parentTopics maps sub-topics to their parent topic.
var parentTopics = map[string]string{
	"Linear Equations":              "Algebra",
	"Expressions & Simplification":  "Algebra",
	"Inequalities":                  "Algebra",
	"Fractions":                     "Number Sense",
	"Decimals":                      "Number Sense",
	"Ratios & Proportions":          "Number Sense",
	"Angles & Triangles":            "Geometry",
	"Area & Perimeter":              "Geometry",
	"Rate Problems":                 "Word Problems",
	"Age Problems":                  "Word Problems",
	"Exponents":                     "Algebra",
	"Probability":                   "Statistics",
}

var engagementPositive = []string{
	"can we do more", "another one", "what about", "interesting", "cool",
	"i like this", "fun", "let me try", "what if", "i have a question",
}

var engagementNegative = []string{
	"boring", "when are we done", "how much longer", "can we stop",
	"i'm tired", "whatever", "i don't care",
}
