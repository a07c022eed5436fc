package bot

const (
	Name      = "lupusregina"
	Version   = "0.3.0"
	Authors   = "flat"
	SourceURL = "https://github.com/flat/lupusregina-"
)

type Color int

const (
	Red    Color = 0xC80000
	Orange Color = 0xF08152
	Blue   Color = 0x3498DB
	Green  Color = 0x00C800
	White  Color = 0xFFFFFF
	Pink   Color = 0xD25148
	Fabled Color = 0xFAB81E
)

const (
	reactSuccess = "\u2705"
	reactFailure = "\u274C"
)
