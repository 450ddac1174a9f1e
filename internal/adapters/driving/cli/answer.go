package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rocketfuel/rocketfuel-cli/internal/core/domain"
)

var answerCmd = &cobra.Command{
	Use:     "answer",
	Aliases: []string{"a"},
	Short:   "Read, post and manage answers",
}

var answerListCmd = &cobra.Command{
	Use:   "list [question-id]",
	Short: "List the answers to a question",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnswerList,
}

var answerPostCmd = &cobra.Command{
	Use:   "post [question-id]",
	Short: "Answer a question",
	Long:  `Answer a question. The answer is taken from --body, or read from stdin when --body is omitted.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runAnswerPost,
}

var answerEditCmd = &cobra.Command{
	Use:   "edit [answer-id]",
	Short: "Edit one of your answers",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnswerEdit,
}

var answerDeleteCmd = &cobra.Command{
	Use:   "delete [answer-id]",
	Short: "Delete one of your answers",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnswerDelete,
}

var answerAcceptCmd = &cobra.Command{
	Use:   "accept [answer-id]",
	Short: "Accept an answer to your question",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnswerAccept,
}

var answerUpvoteCmd = &cobra.Command{
	Use:   "upvote [answer-id]",
	Short: "Upvote an answer",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnswerVote(domain.VoteUp),
}

var answerDownvoteCmd = &cobra.Command{
	Use:   "downvote [answer-id]",
	Short: "Downvote an answer",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnswerVote(domain.VoteDown),
}

var (
	answerFormat string
	answerBody   string
)

func init() {
	addFormatFlag(answerListCmd, &answerFormat)
	answerPostCmd.Flags().StringVarP(&answerBody, "body", "b", "", "answer text (default: read stdin)")
	answerEditCmd.Flags().StringVarP(&answerBody, "body", "b", "", "answer text (default: read stdin)")

	answerCmd.AddCommand(answerListCmd)
	answerCmd.AddCommand(answerPostCmd)
	answerCmd.AddCommand(answerEditCmd)
	answerCmd.AddCommand(answerDeleteCmd)
	answerCmd.AddCommand(answerAcceptCmd)
	answerCmd.AddCommand(answerUpvoteCmd)
	answerCmd.AddCommand(answerDownvoteCmd)
	rootCmd.AddCommand(answerCmd)
}

func runAnswerList(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errNotConfigured("answer")
	}
	if err := checkFormat(answerFormat); err != nil {
		return err
	}
	questionID, err := parseID("question", args[0])
	if err != nil {
		return err
	}

	answers, err := answerService.List(cmd.Context(), questionID)
	if err != nil {
		return fmt.Errorf("failed to list answers: %w", err)
	}

	if ok, err := writeStructured(cmd.OutOrStdout(), answerFormat, answers); ok {
		return err
	}

	if len(answers) == 0 {
		cmd.Println("No answers yet.")
		return nil
	}
	for _, a := range answers {
		printAnswer(cmd, a)
		cmd.Println()
	}
	return nil
}

func runAnswerPost(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errNotConfigured("answer")
	}
	questionID, err := parseID("question", args[0])
	if err != nil {
		return err
	}
	body, err := readBody(cmd, answerBody)
	if err != nil {
		return err
	}

	if err := answerService.Create(cmd.Context(), questionID, domain.AnswerDraft{Answer: body}); err != nil {
		return fmt.Errorf("failed to post answer: %w", err)
	}
	cmd.Printf("Answer posted to question %d.\n", questionID)
	return nil
}

func runAnswerEdit(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errNotConfigured("answer")
	}
	answerID, err := parseID("answer", args[0])
	if err != nil {
		return err
	}
	body, err := readBody(cmd, answerBody)
	if err != nil {
		return err
	}

	if err := answerService.Update(cmd.Context(), answerID, domain.AnswerDraft{Answer: body}); err != nil {
		return fmt.Errorf("failed to update answer: %w", err)
	}
	cmd.Printf("Answer %d updated.\n", answerID)
	return nil
}

func runAnswerDelete(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errNotConfigured("answer")
	}
	answerID, err := parseID("answer", args[0])
	if err != nil {
		return err
	}

	if err := answerService.Delete(cmd.Context(), answerID); err != nil {
		return fmt.Errorf("failed to delete answer: %w", err)
	}
	cmd.Printf("Answer %d deleted.\n", answerID)
	return nil
}

func runAnswerAccept(cmd *cobra.Command, args []string) error {
	if answerService == nil {
		return errNotConfigured("answer")
	}
	answerID, err := parseID("answer", args[0])
	if err != nil {
		return err
	}

	if err := answerService.Accept(cmd.Context(), answerID); err != nil {
		return fmt.Errorf("failed to accept answer: %w", err)
	}
	cmd.Printf("Answer %d accepted.\n", answerID)
	return nil
}

func runAnswerVote(dir domain.VoteDirection) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if answerService == nil {
			return errNotConfigured("answer")
		}
		answerID, err := parseID("answer", args[0])
		if err != nil {
			return err
		}

		if err := answerService.Vote(cmd.Context(), answerID, dir); err != nil {
			return fmt.Errorf("failed to %s answer: %w", dir, err)
		}
		cmd.Printf("Answer %d %sd.\n", answerID, dir)
		return nil
	}
}
