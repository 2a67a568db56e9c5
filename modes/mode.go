package modes

// A Mode identifies a block cipher mode of operation.
type Mode int

const (
	ECB Mode = iota
	CBC
	CTR
)

func (m Mode) String() string {
	switch m {
	case ECB:
		return "ECB"
	case CBC:
		return "CBC"
	case CTR:
		return "CTR"
	default:
		return "unknown"
	}
}
