package machine

// State identifies one of the machine's control states. The definition
// grammar restricts states to non-empty runs of word characters; the type
// itself is an opaque token compared by value.
type State string
