package output

// TSVHeader is the canonical header row for text/TSV outputs.
// Keep this as the single source of truth; all writers should use it.
const TSVHeader = "id\tra\tdec\tmjd\tsectors"

// CSVHeader is the column set for CSV output, matching TSVHeader.
var CSVHeader = []string{"id", "ra", "dec", "mjd", "sectors"}
