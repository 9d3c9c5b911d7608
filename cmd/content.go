package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/shihabsss1/portfolio/editor"
	"github.com/shihabsss1/portfolio/models"
	"github.com/shihabsss1/portfolio/store"
	"github.com/spf13/cobra"
)

const storeCommandTimeout time.Duration = 30 * time.Second

var removableLists = map[string]func(e *editor.Editor, i int) error{
	"skills":      (*editor.Editor).RemoveSkill,
	"hero-images": (*editor.Editor).RemoveHeroImage,
	"gallery":     (*editor.Editor).RemoveGalleryImage,
	"experiences": (*editor.Editor).RemoveExperience,
	"projects":    (*editor.Editor).RemoveProject,
	"socials":     (*editor.Editor).RemoveSocial,
	"changelog":   (*editor.Editor).RemoveChangelogEntry,
}

func listNames() []string {
	names := []string{}
	for name := range removableLists {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// edit loads the document into an editor, applies fn and saves the result.
func edit(cmd *cobra.Command, open StoreOpener, fn func(e *editor.Editor) error) error {
	ctx, cancel := contextWithTimeout(cmd)
	defer cancel()

	s, err := open(ctx)
	if err != nil {
		return err
	}
	defer closeStore(s)

	// Commands save the whole document, so they must not start from the
	// defaults served when the store is unreadable.
	c, err := s.Find(ctx)
	if errors.Is(err, store.ErrNotFound) {
		c = models.Default()
	} else if err != nil {
		return fmt.Errorf("Could not read the content document, nothing was changed: %w", err)
	}

	e := editor.New(s, nil)
	e.Open(c)

	if err := fn(e); err != nil {
		ve := &editor.ValidationError{}
		if errors.As(err, &ve) {
			printValidationErrors(cmd.ErrOrStderr(), ve)
		}

		return err
	}

	err = e.Save(ctx)

	if m := e.Message(); m != nil {
		fmt.Fprintln(cmd.OutOrStdout(), m.Text)
	}

	return err
}

func printValidationErrors(w io.Writer, ve *editor.ValidationError) {
	fields := []string{}
	for field := range ve.Errors {
		fields = append(fields, field)
	}

	slices.Sort(fields)

	for _, field := range fields {
		if msgs, ok := ve.Errors[field].([]string); ok {
			fmt.Fprintf(w, "  %s: %s\n", field, strings.Join(msgs, " "))
		}
	}
}

func newContentCmd(open StoreOpener) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "content",
		Short: "Inspect and edit the site content",
	}

	cmd.AddCommand(
		newContentShowCmd(open),
		newContentSeedCmd(open),
		newAddSkillCmd(open),
		newAddExperienceCmd(open),
		newAddProjectCmd(open),
		newAddSocialCmd(open),
		newAddChangelogCmd(open),
		newRemoveCmd(open),
	)

	return cmd
}

func newContentShowCmd(open StoreOpener) *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the current content document as JSON",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := contextWithTimeout(cmd)
			defer cancel()

			s, err := open(ctx)
			if err != nil {
				return err
			}
			defer closeStore(s)

			var out interface{} = s.Current(ctx)

			if len(section) > 0 {
				raw, err := json.Marshal(out)
				if err != nil {
					return err
				}

				sections := map[string]json.RawMessage{}
				if err := json.Unmarshal(raw, &sections); err != nil {
					return err
				}

				v, ok := sections[section]
				if !ok {
					return fmt.Errorf("Unknown section '%s'.", section)
				}

				out = v
			}

			raw, err := json.MarshalIndent(out, "", "  ")
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), string(raw))

			return nil
		},
	}

	cmd.Flags().StringVar(&section, "section", "", "only print one top-level section")

	return cmd
}

func newContentSeedCmd(open StoreOpener) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the content document from the defaults",
		Long: `Create the content document from the default content when it does not
exist yet. With --force every section is overwritten with its default.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := contextWithTimeout(cmd)
			defer cancel()

			s, err := open(ctx)
			if err != nil {
				return err
			}
			defer closeStore(s)

			if force {
				err = s.SaveAll(ctx, models.Default())
			} else {
				err = s.Save(ctx, models.ContentPatch{})
			}

			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Content document seeded.")

			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing document")

	return cmd
}

func newAddSkillCmd(open StoreOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "add-skill <skill>",
		Short: "Append a skill to the about section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return edit(cmd, open, func(e *editor.Editor) error {
				return e.AddSkill(args[0])
			})
		},
	}
}

func newAddExperienceCmd(open StoreOpener) *cobra.Command {
	x := models.Experience{}

	cmd := &cobra.Command{
		Use:   "add-experience",
		Short: "Append a work experience entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return edit(cmd, open, func(e *editor.Editor) error {
				_, err := e.AddExperience(x)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&x.Company, "company", "", "company name")
	cmd.Flags().StringVar(&x.Position, "position", "", "position held")
	cmd.Flags().StringVar(&x.Duration, "duration", "", "free text duration, e.g. 2021 - 2023")
	cmd.Flags().StringVar(&x.Description, "description", "", "description")

	return cmd
}

func newAddProjectCmd(open StoreOpener) *cobra.Command {
	var github string
	p := models.Project{}

	cmd := &cobra.Command{
		Use:   "add-project",
		Short: "Append a project",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(github) > 0 {
				p.Github = &github
			}

			return edit(cmd, open, func(e *editor.Editor) error {
				_, err := e.AddProject(p)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&p.Title, "title", "", "project title")
	cmd.Flags().StringVar(&p.Description, "description", "", "project description")
	cmd.Flags().StringVar(&p.Image, "image", "", "image URL")
	cmd.Flags().StringVar(&p.Link, "link", "", "project URL")
	cmd.Flags().StringVar(&github, "github", "", "repository URL")
	cmd.Flags().StringSliceVar(&p.Tags, "tag", []string{}, "tag (repeatable)")

	return cmd
}

func newAddSocialCmd(open StoreOpener) *cobra.Command {
	s := models.Social{}

	cmd := &cobra.Command{
		Use:   "add-social",
		Short: "Append a social link",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return edit(cmd, open, func(e *editor.Editor) error {
				_, err := e.AddSocial(s)
				return err
			})
		},
	}

	cmd.Flags().StringVar(&s.Platform, "platform", "", "platform name, e.g. GitHub")
	cmd.Flags().StringVar(&s.Link, "link", "", "profile URL")

	return cmd
}

func newAddChangelogCmd(open StoreOpener) *cobra.Command {
	item := models.ChangelogItem{}

	cmd := &cobra.Command{
		Use:   "add-changelog",
		Short: "Prepend a changelog entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return edit(cmd, open, func(e *editor.Editor) error {
				return e.AddChangelogEntry(item)
			})
		},
	}

	cmd.Flags().StringVar(&item.Version, "version", "", "release version")
	cmd.Flags().StringVar(&item.Title, "title", "", "release title")
	cmd.Flags().StringVar(&item.Date, "date", time.Now().Format(time.DateOnly), "release date (YYYY-MM-DD)")
	cmd.Flags().StringArrayVar(&item.Changes, "change", []string{}, "change description (repeatable)")

	return cmd
}

func newRemoveCmd(open StoreOpener) *cobra.Command {
	var (
		list  string
		index int
	)

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Remove an entry from a list by index",
		RunE: func(cmd *cobra.Command, _ []string) error {
			remove, ok := removableLists[list]
			if !ok {
				return fmt.Errorf("Unknown list '%s'. Valid lists: %s.", list, strings.Join(listNames(), ", "))
			}

			return edit(cmd, open, func(e *editor.Editor) error {
				return remove(e, index)
			})
		},
	}

	cmd.Flags().StringVar(&list, "list", "", "list name: "+strings.Join(listNames(), ", "))
	cmd.Flags().IntVar(&index, "index", -1, "zero-based index of the entry")
	_ = cmd.MarkFlagRequired("list")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}
