package pipe

import "github.com/user/pixelproc/pkg/ports"

// Registers holds the register offsets of one pipe's processing block.
// The main and auxiliary blocks have the same layout at different bases;
// only the main block carries the color-conversion registers.
type Registers struct {
	FCTCR   uint32 // flow control: frame-skip code
	CRSTR   uint32 // crop start (origin)
	CRSZR   uint32 // crop size + enable
	DCCR    uint32 // decimation control
	DSCR    uint32 // downsize control: dividers + enable
	DSRTIOR uint32 // downsize ratios
	DSSZR   uint32 // downsize target size
	GMCR    uint32 // gamma control
	PPCR    uint32 // pixel packer control

	// YUVCR and YUVRR1 are zero on the auxiliary pipe, which has no
	// color-conversion block. YUVRR1 is the first of six consecutive
	// matrix registers.
	YUVCR  uint32
	YUVRR1 uint32
}

// RegistersFor returns the register offsets of a pipe's block.
func RegistersFor(id ports.PipeID) Registers {
	if id == ports.PipeMain {
		return Registers{
			FCTCR:   0x900,
			CRSTR:   0x904,
			CRSZR:   0x908,
			DCCR:    0x90C,
			DSCR:    0x910,
			DSRTIOR: 0x914,
			DSSZR:   0x918,
			GMCR:    0x970,
			PPCR:    0x9C0,
			YUVCR:   0x980,
			YUVRR1:  0x984,
		}
	}
	return Registers{
		FCTCR:   0xD00,
		CRSTR:   0xD04,
		CRSZR:   0xD08,
		DCCR:    0xD0C,
		DSCR:    0xD10,
		DSRTIOR: 0xD14,
		DSSZR:   0xD18,
		GMCR:    0xD70,
		PPCR:    0xDC0,
	}
}

// Register field layout shared by both pipes.
const (
	// FCTCR
	FrateMask uint32 = 0x3

	// CRSTR
	HStartShift = 0
	VStartShift = 16

	// CRSZR and DSSZR
	HSizeShift = 0
	VSizeShift = 16
	CropEnable = 1 << 31

	// DCCR
	DecEnable = 1 << 0
	HDecShift = 1
	VDecShift = 3

	// DSCR
	HDivShift      = 0
	VDivShift      = 16
	DownsizeEnable = 1 << 31

	// DSRTIOR
	HRatioShift = 0
	VRatioShift = 16

	// GMCR
	GammaEnable = 1 << 0

	// YUVCR
	ConvEnable  = 1 << 0
	ConvTypeRGB = 1 << 1
	ConvClamp   = 1 << 2
)
