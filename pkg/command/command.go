// Package command implements local persona commands that answer without
// calling the generation backend: photo tips, recs, dice rolls, and a
// one-question quiz.
package command

import (
	"fmt"
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	bangForm   = regexp.MustCompile(`^!(\w+)(?:\s+(.*))?$`)
	addressed  = regexp.MustCompile(`(?i)^himmy[,:\s]+\s*(\w+)(?:\s+(.*))?$`)
	diceFormat = regexp.MustCompile(`^(\d*)d(\d+)$`)
)

// Parse extracts a command and its argument from input. Commands are either
// "!cmd args" or "himmy, cmd args"; everything else is a normal chat turn.
func Parse(input string) (cmd, args string, ok bool) {
	s := strings.TrimSpace(input)
	if m := bangForm.FindStringSubmatch(s); m != nil {
		return strings.ToLower(m[1]), strings.TrimSpace(m[2]), true
	}
	if m := addressed.FindStringSubmatch(s); m != nil {
		return strings.ToLower(m[1]), strings.TrimSpace(m[2]), true
	}
	return "", "", false
}

var photoTips = []string{
	"Try shooting during golden hour and look for reflections on the river — instant mood.",
	"Use a small tripod for low-light; or bump ISO for motion shots.",
	"Look for leading lines (like bridges or streams) to draw the eye into the shot.",
}

// quiz is the pending-answer state for a running quiz question.
type quiz struct {
	question string
	answer   string
	reveal   string
}

// Dispatcher routes persona commands and tracks quiz state across turns.
type Dispatcher struct {
	rnd     *rand.Rand
	pending *quiz
}

// New returns a dispatcher with a time-seeded random source.
func New() *Dispatcher {
	return newWithRand(rand.New(rand.NewSource(time.Now().UnixNano())))
}

func newWithRand(rnd *rand.Rand) *Dispatcher {
	return &Dispatcher{rnd: rnd}
}

// Handle processes one input line. It returns the local reply and true when
// the line was a command or a pending quiz answer; otherwise ("", false) and
// the line should go to the model.
func (d *Dispatcher) Handle(input string) (string, bool) {
	if d.pending != nil {
		reply := d.checkQuizAnswer(input)
		d.pending = nil
		return reply, true
	}

	cmd, args, ok := Parse(input)
	if !ok {
		return "", false
	}

	switch cmd {
	case "photo":
		return d.handlePhoto(args), true
	case "rec", "recommend":
		return d.handleRec(args), true
	case "roll":
		return d.handleRoll(args), true
	case "quiz":
		return d.handleQuiz(), true
	default:
		return fmt.Sprintf("I don't know the command '%s'. Try !rec or !photo.", cmd), true
	}
}

func (d *Dispatcher) handlePhoto(args string) string {
	tip := photoTips[d.rnd.Intn(len(photoTips))]
	if args != "" {
		return tip + " Extra: " + args
	}
	return tip
}

func (d *Dispatcher) handleRec(args string) string {
	a := strings.ToLower(args)
	switch {
	case strings.Contains(a, "edm"):
		return "EDM rec: Flume (instrumentals) for chill, Martin Garrix for hype, and try Deadmau5 for texture."
	case strings.Contains(a, "photo") || strings.Contains(a, "patapsco"):
		return "Photo rec: Avalon area of Patapsco at sunset, or check the old bridges for moody frames."
	case strings.Contains(a, "game") || strings.Contains(a, "survev") || strings.Contains(a, "surviv"):
		return "Game rec: try a 2v2 Survev run if you want chaos and comebacks."
	case a == "":
		return "Try Flume for chill or Martin Garrix for hype. Ask '!rec edm' or '!rec photo' for specifics."
	default:
		return fmt.Sprintf("Hmm, not sure about '%s', but I'm vibing with Flume and Patapsco shots lately.", args)
	}
}

func (d *Dispatcher) handleRoll(args string) string {
	s := strings.TrimSpace(args)
	if s == "" {
		s = "1d6"
	}
	m := diceFormat.FindStringSubmatch(s)
	if m == nil {
		return "Use the format NdM, e.g. '!roll 2d6' or '!roll d20'."
	}
	n := 1
	if m[1] != "" {
		n, _ = strconv.Atoi(m[1])
	}
	sides, _ := strconv.Atoi(m[2])
	if n <= 0 || sides <= 0 || n > 100 {
		return "Can't roll that — pick 1-100 dice and a positive number of sides."
	}

	rolls := make([]int, n)
	sum := 0
	for i := range rolls {
		rolls[i] = d.rnd.Intn(sides) + 1
		sum += rolls[i]
	}
	return fmt.Sprintf("Rolled %dd%d: %v (sum: %d)", n, sides, rolls, sum)
}

func (d *Dispatcher) handleQuiz() string {
	d.pending = &quiz{
		question: "Quiz time: In which year did WWII end?",
		answer:   "1945",
		reveal:   "1945 was the year WWII ended.",
	}
	return d.pending.question
}

var nonDigits = regexp.MustCompile(`[^0-9]`)

func (d *Dispatcher) checkQuizAnswer(input string) string {
	given := nonDigits.ReplaceAllString(input, "")
	if given == d.pending.answer {
		return "Nice! That's right — " + d.pending.reveal
	}
	return fmt.Sprintf("Not quite — the correct year was %s.", d.pending.answer)
}
