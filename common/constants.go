package common

const (
	BaseWidth  = 1280
	BaseHeight = 720

	// TPS is the fixed simulation rate; every system steps by 1/TPS.
	TPS = 60
)
