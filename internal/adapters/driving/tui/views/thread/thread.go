// Package thread provides the question thread view for the TUI.
package thread

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/components/status"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/keymap"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/messages"
	"github.com/rocketfuel/rocketfuel-cli/internal/adapters/driving/tui/styles"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
	"github.com/rocketfuel/rocketfuel-cli/internal/core/ports/driving"
)

// Actions reported through messages.ActionCompleted.
const (
	ActionUpVote   = "upvote"
	ActionDownVote = "downvote"
	ActionAccept   = "accept"
	ActionReply    = "reply"
)

// View shows a question with its answers. Row 0 is the question,
// row i is answer i-1.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	statusbar *status.Bar
	editor    textarea.Model

	questions driving.QuestionService
	answers   driving.AnswerService
	ctx       context.Context

	userID     int64
	questionID int64
	thread     *domain.Thread
	loading    bool
	err        error
	selected   int
	replying   bool

	width  int
	height int
	ready  bool
}

// NewView creates a new thread view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	questions driving.QuestionService,
	answers driving.AnswerService,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	editor := textarea.New()
	editor.Placeholder = "Write your answer..."
	editor.ShowLineNumbers = false
	editor.SetWidth(76)
	editor.SetHeight(6)

	bar := status.NewBar(s, km)
	bar.SetState(status.StateThread)

	return &View{
		styles:    s,
		keymap:    km,
		statusbar: bar,
		editor:    editor,
		questions: questions,
		answers:   answers,
		ctx:       context.Background(),
		width:     80,
		height:    24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Load starts loading a question and its answers.
func (v *View) Load(userID, questionID int64) tea.Cmd {
	v.userID = userID
	v.questionID = questionID
	v.thread = nil
	v.err = nil
	v.selected = 0
	v.replying = false
	v.loading = true
	v.statusbar.SetState(status.StateThread)
	v.statusbar.SetMessage("")
	return v.reload()
}

func (v *View) reload() tea.Cmd {
	ctx, svc := v.ctx, v.questions
	userID, questionID := v.userID, v.questionID
	return func() tea.Msg {
		t, err := svc.Thread(ctx, userID, questionID)
		return messages.ThreadLoaded{Thread: t, Err: err}
	}
}

// Update handles messages for the thread view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.ThreadLoaded:
		v.loading = false
		v.err = msg.Err
		v.thread = msg.Thread
		if v.thread != nil && v.selected > len(v.thread.Answers) {
			v.selected = len(v.thread.Answers)
		}
		return v, nil

	case messages.ActionCompleted:
		if msg.Err != nil {
			v.statusbar.SetMessage(failureMessage(msg.Action, msg.Err))
			return v, nil
		}
		v.statusbar.SetMessage(successMessage(msg.Action))
		return v, v.reload()

	case tea.KeyMsg:
		if v.replying {
			return v.handleReplyKey(msg)
		}
		return v.handleKeyMsg(msg)
	}

	if v.replying {
		var cmd tea.Cmd
		v.editor, cmd = v.editor.Update(msg)
		return v, cmd
	}
	return v, nil
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	key := msg.String()
	switch {
	case keymap.Matches(key, v.keymap.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewSearch}
		}
	case keymap.Matches(key, v.keymap.Up):
		if v.selected > 0 {
			v.selected--
		}
	case keymap.Matches(key, v.keymap.Down):
		if v.thread != nil && v.selected < len(v.thread.Answers) {
			v.selected++
		}
	case keymap.Matches(key, v.keymap.Refresh):
		if v.questionID != 0 {
			v.loading = true
			return v, v.reload()
		}
	case v.thread == nil:
		return v, nil
	case keymap.Matches(key, v.keymap.UpVote):
		return v, v.vote(domain.VoteUp)
	case keymap.Matches(key, v.keymap.DownVote):
		return v, v.vote(domain.VoteDown)
	case keymap.Matches(key, v.keymap.Accept):
		return v, v.accept()
	case keymap.Matches(key, v.keymap.Reply):
		v.replying = true
		v.statusbar.SetState(status.StateReplying)
		v.statusbar.SetMessage("Writing an answer")
		return v, v.editor.Focus()
	}
	return v, nil
}

func (v *View) handleReplyKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch {
	case keymap.Matches(msg.String(), v.keymap.Back):
		v.stopReplying()
		v.statusbar.SetMessage("")
		return v, nil
	case keymap.Matches(msg.String(), v.keymap.Submit):
		body := strings.TrimSpace(v.editor.Value())
		if body == "" {
			v.statusbar.SetMessage("The answer is empty.")
			return v, nil
		}
		v.stopReplying()
		v.editor.Reset()
		return v, v.reply(body)
	}

	var cmd tea.Cmd
	v.editor, cmd = v.editor.Update(msg)
	return v, cmd
}

func (v *View) stopReplying() {
	v.replying = false
	v.editor.Blur()
	v.statusbar.SetState(status.StateThread)
}

func (v *View) vote(dir domain.VoteDirection) tea.Cmd {
	action := ActionUpVote
	if dir == domain.VoteDown {
		action = ActionDownVote
	}
	ctx := v.ctx
	if v.selected == 0 {
		id, svc := v.thread.Question.ID, v.questions
		return func() tea.Msg {
			return messages.ActionCompleted{Action: action, Err: svc.Vote(ctx, id, dir)}
		}
	}
	id, svc := v.thread.Answers[v.selected-1].ID, v.answers
	return func() tea.Msg {
		return messages.ActionCompleted{Action: action, Err: svc.Vote(ctx, id, dir)}
	}
}

func (v *View) accept() tea.Cmd {
	if v.selected == 0 {
		v.statusbar.SetMessage("Select an answer to accept.")
		return nil
	}
	ctx, id, svc := v.ctx, v.thread.Answers[v.selected-1].ID, v.answers
	return func() tea.Msg {
		return messages.ActionCompleted{Action: ActionAccept, Err: svc.Accept(ctx, id)}
	}
}

func (v *View) reply(body string) tea.Cmd {
	ctx, id, svc := v.ctx, v.questionID, v.answers
	return func() tea.Msg {
		err := svc.Create(ctx, id, domain.AnswerDraft{Answer: body})
		return messages.ActionCompleted{Action: ActionReply, Err: err}
	}
}

func successMessage(action string) string {
	switch action {
	case ActionUpVote:
		return "Upvoted."
	case ActionDownVote:
		return "Downvoted."
	case ActionAccept:
		return "Answer accepted."
	case ActionReply:
		return "Answer posted."
	}
	return "Done."
}

func failureMessage(action string, err error) string {
	if errors.Is(err, domain.ErrAuthRequired) || errors.Is(err, domain.ErrReauthenticationFailed) {
		return "Sign in with 'rocketfuel login' first."
	}
	return fmt.Sprintf("Could not %s: %v", action, err)
}

// View renders the thread.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var body string
	switch {
	case v.loading && v.thread == nil:
		body = v.styles.Muted.Render("Loading...")
	case v.err != nil:
		body = v.styles.Error.Render("Error: " + v.err.Error())
	case v.thread == nil:
		body = v.styles.Muted.Render("No question selected.")
	default:
		body = v.renderThread()
	}

	sections := []string{body}
	if v.replying {
		sections = append(sections, "", v.styles.Subtitle.Render("Your answer"), v.editor.View())
	}
	sections = append(sections, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (v *View) renderThread() string {
	q := v.thread.Question
	blocks := make([]string, 0, len(v.thread.Answers)+2)

	var head strings.Builder
	head.WriteString(v.marker(0) + v.styles.Title.Render(q.Title) + "\n")
	head.WriteString("  " + v.meta(q.Post))
	for _, t := range q.TagLabels() {
		head.WriteString(" " + v.styles.TagChip(t))
	}
	if coins := v.styles.Bounty(q.Bounty); coins != "" {
		head.WriteString(" " + coins)
	}
	head.WriteString("\n\n" + v.wrap(q.Question))
	blocks = append(blocks, head.String())

	if len(v.thread.Answers) == 0 {
		blocks = append(blocks, v.styles.Muted.Render("No answers yet. Press r to reply."))
	} else {
		blocks = append(blocks, v.styles.Subtitle.Render(fmt.Sprintf("%d answer(s)", len(v.thread.Answers))))
	}
	for i, a := range v.thread.Answers {
		line := v.marker(i+1) + v.meta(a.Post)
		if a.Accepted {
			line += " " + v.styles.Success.Render("accepted")
		}
		blocks = append(blocks, line+"\n"+v.wrap(a.Answer))
	}

	// Keep the selected block on screen.
	start := 0
	if v.selected > 1 {
		start = v.selected
	}
	if start > 0 {
		blocks = blocks[start:]
	}
	return strings.Join(blocks, "\n\n")
}

func (v *View) marker(row int) string {
	if row == v.selected {
		return v.styles.Title.Render("> ")
	}
	return "  "
}

func (v *View) meta(p domain.Post) string {
	return v.styles.VoteCount(p.Votes) + " " +
		v.styles.Muted.Render(fmt.Sprintf("%s · %s", p.CreatedBy, p.CreatedAt))
}

func (v *View) wrap(text string) string {
	width := v.width - 4
	if width < 20 {
		width = 20
	}
	return lipgloss.NewStyle().Width(width).PaddingLeft(2).Render(text)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.editor.SetWidth(width - 4)
	v.statusbar.SetWidth(width)
}

// SetUser shows the signed-in user in the status bar.
func (v *View) SetUser(user string) {
	v.statusbar.SetUser(user)
}

// Thread returns the loaded thread.
func (v *View) Thread() *domain.Thread {
	return v.thread
}

// Selected returns the selected row.
func (v *View) Selected() int {
	return v.selected
}

// Replying reports whether the answer editor is open.
func (v *View) Replying() bool {
	return v.replying
}

// Loading reports whether a load is in flight.
func (v *View) Loading() bool {
	return v.loading
}

// Err returns the load error, if any.
func (v *View) Err() error {
	return v.err
}

// Status returns the status bar message.
func (v *View) Status() string {
	return v.statusbar.Message()
}
