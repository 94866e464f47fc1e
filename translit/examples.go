package translit

// Examples are the short words shown by the interactive examples command.
var Examples = []string{
	"hello", "egypt", "pyramid", "pharaoh",
	"nile", "ancient", "hieroglyph", "123",
}

// DemoTexts are converted in the first section of the demonstration.
var DemoTexts = []string{
	"hello world",
	"ancient egypt",
	"pyramid power",
	"pharaoh king",
	"nile river",
	"hieroglyphics rock",
	"amazing discovery 123",
}

// BreakdownSample is explained character by character in the demonstration.
const BreakdownSample = "egypt"
