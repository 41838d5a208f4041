package domain

// Artifact is a stored file with a stable identifier and a retrievable link.
type Artifact struct {
	ID   string
	Name string
	Link string
}

// ArtifactPair holds the processed and the untouched original upload for one
// request. Both halves are produced on the success path; a partial set only
// exists inside a failed publish, where PublishReport records which half
// landed.
type ArtifactPair struct {
	Processed Artifact
	Original  Artifact
}

// PublishReport records the outcome of the two-phase publish so a caller or
// operator can reconcile a partial failure by hand. There is no automatic
// rollback of an already-published sibling.
type PublishReport struct {
	ProcessedUploaded bool
	OriginalUploaded  bool
	Pair              ArtifactPair
}
