package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

var questionCmd = &cobra.Command{
	Use:     "question",
	Aliases: []string{"q"},
	Short:   "Read, ask and manage questions",
}

var questionShowCmd = &cobra.Command{
	Use:   "show [question-id]",
	Short: "Show a question and its answers",
	Long: `Show a question together with its answers.

Questions are addressed by their owner. Pass --user with the ID shown in
search results; without it the question is looked up among your own.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuestionShow,
}

var questionUserCmd = &cobra.Command{
	Use:   "user [user-id]",
	Short: "List a user's questions",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestionUser,
}

var questionAskCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a new question",
	Long: `Ask a new question.

The body is taken from --body, or read from stdin when --body is omitted:
  rocketfuel question ask --title "Why is my build slow?" --tag go < notes.md`,
	Args: cobra.NoArgs,
	RunE: runQuestionAsk,
}

var questionEditCmd = &cobra.Command{
	Use:   "edit [question-id]",
	Short: "Edit one of your questions",
	Long:  `Edit one of your questions. Fields whose flags are not given keep their current value.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestionEdit,
}

var questionDeleteCmd = &cobra.Command{
	Use:   "delete [question-id]",
	Short: "Delete one of your questions",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestionDelete,
}

var questionUpvoteCmd = &cobra.Command{
	Use:   "upvote [question-id]",
	Short: "Upvote a question",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestionVote(domain.VoteUp),
}

var questionDownvoteCmd = &cobra.Command{
	Use:   "downvote [question-id]",
	Short: "Downvote a question",
	Args:  cobra.ExactArgs(1),
	RunE:  runQuestionVote(domain.VoteDown),
}

// Flags for question commands.
var (
	questionUserID int64
	questionFormat string
	questionTitle  string
	questionBody   string
	questionTags   []string
	questionBounty int
)

func init() {
	questionShowCmd.Flags().Int64VarP(&questionUserID, "user", "u", 0, "ID of the user who asked the question")
	addFormatFlag(questionShowCmd, &questionFormat)
	addFormatFlag(questionUserCmd, &questionFormat)

	for _, cmd := range []*cobra.Command{questionAskCmd, questionEditCmd} {
		cmd.Flags().StringVarP(&questionTitle, "title", "t", "", "question title")
		cmd.Flags().StringVarP(&questionBody, "body", "b", "", "question body (default: read stdin)")
		cmd.Flags().StringSliceVar(&questionTags, "tag", nil, "tag label (repeatable)")
		cmd.Flags().IntVar(&questionBounty, "bounty", 0, "coins offered for an accepted answer")
	}

	questionCmd.AddCommand(questionShowCmd)
	questionCmd.AddCommand(questionUserCmd)
	questionCmd.AddCommand(questionAskCmd)
	questionCmd.AddCommand(questionEditCmd)
	questionCmd.AddCommand(questionDeleteCmd)
	questionCmd.AddCommand(questionUpvoteCmd)
	questionCmd.AddCommand(questionDownvoteCmd)
	rootCmd.AddCommand(questionCmd)
}

func runQuestionShow(cmd *cobra.Command, args []string) error {
	if questionService == nil {
		return errNotConfigured("question")
	}
	if err := checkFormat(questionFormat); err != nil {
		return err
	}
	questionID, err := parseID("question", args[0])
	if err != nil {
		return err
	}

	userID := questionUserID
	if userID == 0 && sessionService != nil {
		userID = sessionService.Current().User.ID
	}
	if userID == 0 {
		return fmt.Errorf("%w: --user is required when not signed in", domain.ErrInvalidInput)
	}

	thread, err := questionService.Thread(cmd.Context(), userID, questionID)
	if err != nil {
		return fmt.Errorf("failed to load question: %w", err)
	}

	if ok, err := writeStructured(cmd.OutOrStdout(), questionFormat, thread); ok {
		return err
	}

	printQuestion(cmd, thread.Question)
	cmd.Println()
	if len(thread.Answers) == 0 {
		cmd.Println("No answers yet.")
		return nil
	}
	cmd.Printf("%d answer(s)\n\n", len(thread.Answers))
	for _, a := range thread.Answers {
		printAnswer(cmd, a)
		cmd.Println()
	}
	return nil
}

func runQuestionUser(cmd *cobra.Command, args []string) error {
	if questionService == nil {
		return errNotConfigured("question")
	}
	if err := checkFormat(questionFormat); err != nil {
		return err
	}
	userID, err := parseID("user", args[0])
	if err != nil {
		return err
	}

	questions, err := questionService.ByUser(cmd.Context(), userID)
	if err != nil {
		return fmt.Errorf("failed to list questions: %w", err)
	}

	if ok, err := writeStructured(cmd.OutOrStdout(), questionFormat, questions); ok {
		return err
	}

	if len(questions) == 0 {
		cmd.Println("No questions found.")
		return nil
	}
	for i := range questions {
		printQuestionRow(cmd, i+1, questions[i])
		cmd.Println()
	}
	return nil
}

func runQuestionAsk(cmd *cobra.Command, _ []string) error {
	if questionService == nil {
		return errNotConfigured("question")
	}

	body, err := readBody(cmd, questionBody)
	if err != nil {
		return err
	}
	draft := domain.QuestionDraft{
		Title:    questionTitle,
		Question: body,
		Bounty:   questionBounty,
		Tags:     questionTags,
	}

	if err := questionService.Create(cmd.Context(), draft); err != nil {
		return fmt.Errorf("failed to ask question: %w", err)
	}
	cmd.Println("Question posted.")
	return nil
}

func runQuestionEdit(cmd *cobra.Command, args []string) error {
	if questionService == nil {
		return errNotConfigured("question")
	}
	questionID, err := parseID("question", args[0])
	if err != nil {
		return err
	}

	current, err := questionService.Mine(cmd.Context(), questionID)
	if err != nil {
		return fmt.Errorf("failed to load question: %w", err)
	}

	draft := domain.QuestionDraft{
		Title:    current.Title,
		Question: current.Question,
		Bounty:   current.Bounty,
		Tags:     current.TagLabels(),
	}
	flags := cmd.Flags()
	if flags.Changed("title") {
		draft.Title = questionTitle
	}
	if flags.Changed("body") {
		draft.Question = questionBody
	}
	if flags.Changed("bounty") {
		draft.Bounty = questionBounty
	}
	if flags.Changed("tag") {
		draft.Tags = questionTags
	}

	updated, err := questionService.Update(cmd.Context(), questionID, draft)
	if err != nil {
		return fmt.Errorf("failed to update question: %w", err)
	}
	cmd.Printf("Question %d updated: %s\n", updated.ID, updated.Title)
	return nil
}

func runQuestionDelete(cmd *cobra.Command, args []string) error {
	if questionService == nil {
		return errNotConfigured("question")
	}
	questionID, err := parseID("question", args[0])
	if err != nil {
		return err
	}

	if err := questionService.Delete(cmd.Context(), questionID); err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	cmd.Printf("Question %d deleted.\n", questionID)
	return nil
}

func runQuestionVote(dir domain.VoteDirection) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if questionService == nil {
			return errNotConfigured("question")
		}
		questionID, err := parseID("question", args[0])
		if err != nil {
			return err
		}

		if err := questionService.Vote(cmd.Context(), questionID, dir); err != nil {
			return fmt.Errorf("failed to %s question: %w", dir, err)
		}
		cmd.Printf("Question %d %sd.\n", questionID, dir)
		return nil
	}
}

func parseID(kind, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %s id %q", domain.ErrInvalidInput, kind, arg)
	}
	return id, nil
}
