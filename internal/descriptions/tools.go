package descriptions

// Comprehensive tool descriptions with practical examples and use cases

const (
	IntakeParseFileDescription = `Parse an uploaded file into a normalized tabular shape.

**When to use:** A user has uploaded a CSV, Excel, JSON, PDF, image or text file and you need its content as headers plus typed rows.

**Why it's useful:** Every supported format comes back in the same shape, so downstream steps never branch on file type. Cell values are typed (string, number, boolean, null) rather than raw text.

**Examples:**
• Process an upload: "Parse places.csv and show me the rows"
• Inspect a spreadsheet: "Parse visitors.xlsx and summarize the columns"
• Read a scan: "Parse ticket-photo.jpg and show the recognized text"

**Common workflows:**
1. Form Prefill: Parse file → Extract metadata → Prefill the place form
2. Upload Review: Validate file → Parse → Preview rows for the user

**Best practices:** Run intake_validate_file first for user uploads; parse failures carry a VALIDATION_ERROR or PARSE_ERROR code that tells you whether a different file or a different format is needed.`

	IntakeValidateFileDescription = `Check a file against the configured size and format constraints.

**When to use:** Before parsing any user-supplied file, especially in automated upload flows.

**Why it's useful:** Reports every failed check at once (size, emptiness, format), so the user can fix all problems in one round trip instead of discovering them one by one.

**Examples:**
• Upload gate: "Validate holiday-list.xlsx before importing it"
• Pre-flight: "Check whether scan.png is within the upload limit"

**Common workflows:**
1. Upload Pipeline: Validate → Parse if accepted → Report all errors otherwise
2. Quality Check: Validate a batch → Reject bad files → Process the rest

**Best practices:** Validation failures are recoverable by choosing a different file; they never mean the service itself is broken.`

	IntakeExtractMetadataDescription = `Parse a file and infer a place name and location with confidence scores.

**When to use:** Prefilling a place submission form from an uploaded document, spreadsheet or photo.

**Why it's useful:** Finds the most likely place name and location using header matching and text mining, and reports a confidence in [0,1] for each so the caller can decide what to prefill.

**Examples:**
• Spreadsheet prefill: "Extract metadata from attractions.csv to prefill the form"
• Photo prefill: "Infer the place from ticket-scan.jpg"
• Document prefill: "Extract the monument name from brochure.pdf"

**Common workflows:**
1. Form Prefill: Extract metadata → Prefill fields with confidence above threshold → Leave the rest blank
2. Bulk Import: Extract per file → Queue low-confidence results for manual review

**Best practices:** A confidence of 0 always means "nothing found"; leave that field blank and editable rather than guessing.`

	IntakeServerInfoDescription = `Get server information, accepted formats and usage guidance.

**When to use:** Starting a session with the intake server, or checking which formats and size limits are in effect.

**Why it's useful:** Lists every accepted format with its MIME type, the configured upload limit, and the available tools, so clients can build upload UIs without hardcoding constraints.

**Examples:**
• Session start: "Check what formats the intake server accepts"
• UI setup: "Get the upload size limit to configure the file picker"

**Best practices:** Run at the start of a session; the constraints are fixed for the server's lifetime.`
)

// ToolDescriptions maps tool names to their comprehensive descriptions
var ToolDescriptions = map[string]string{
	"intake_parse_file":       IntakeParseFileDescription,
	"intake_validate_file":    IntakeValidateFileDescription,
	"intake_extract_metadata": IntakeExtractMetadataDescription,
	"intake_server_info":      IntakeServerInfoDescription,
}

// GetToolDescription returns the comprehensive description for a tool
func GetToolDescription(toolName string) string {
	if desc, exists := ToolDescriptions[toolName]; exists {
		return desc
	}
	return "Tool description not available"
}

// GetAllToolNames returns a list of all available tool names
func GetAllToolNames() []string {
	var names []string
	for name := range ToolDescriptions {
		names = append(names, name)
	}
	return names
}
