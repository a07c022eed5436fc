package fun

var EightBallAnswers = []string{
	"It is certain.",
	"It is decidedly so.",
	"Without a doubt.",
	"Yes- definitely.",
	"You may rely on it.",
	"As I see it, yes",
	"Most likely",
	"Outlook good.",
	"Yes.",
	"Signs point to yes.",
	"Reply hazy, try again.",
	"Ask again later.",
	"Better not tell you now",
	"Cannot predict now.",
	"Concentrate and ask again.",
	"Don't count on it.",
	"My reply is no.",
	"My sources say no.",
	"Outlook not so good.",
	"Very doubtful.",
}

const (
	ColorPositive = 0x28A745
	ColorNeutral  = 0xFFC107
	ColorNegative = 0xDC3545
)

// EightBall picks an answer and returns it with its index.
func EightBall(r Source) (string, int) {
	i := r.Intn(len(EightBallAnswers))
	return EightBallAnswers[i], i
}

// EightBallColor is green for the positive answers, yellow for the
// non-committal ones and red otherwise.
func EightBallColor(i int) int {
	switch {
	case i <= 9:
		return ColorPositive
	case i <= 14:
		return ColorNeutral
	default:
		return ColorNegative
	}
}
