package types

// Record kinds, used as the "type" field of dataset lines and as metric
// labels.
const (
	KindAffiliation = "affiliation"
	KindPublication = "publication"
	KindReference   = "reference"
	KindLink        = "link"
)

// RecordKinds lists the dataset record kinds in the order a dataset must
// present them for every record to apply.
var RecordKinds = []string{
	KindAffiliation,
	KindPublication,
	KindReference,
	KindLink,
}
