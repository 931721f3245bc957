package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/SergeyParamoshkin/presupuesto/internal/model"
)

var articlesCmd = &cobra.Command{
	Use:     "articles",
	Aliases: []string{"a"},
	Short:   "Run a single article operation without the menu",
}

var articlesCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Register a new article",
	Example: `  presupuesto articles create --description "Office chairs" --quantity 12 --category Furniture`,
	Args:    cobra.NoArgs,
	RunE:    runArticlesCreate,
}

var articlesGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show an article",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticlesGet,
}

var articlesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Replace the given fields of an article",
	Long: `Update writes only the fields passed as flags. A quantity that is not made of
decimal digits is ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runArticlesUpdate,
}

var articlesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an article",
	Args:  cobra.ExactArgs(1),
	RunE:  runArticlesDelete,
}

var articlesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all articles",
	Args:  cobra.NoArgs,
	RunE:  runArticlesList,
}

func init() {
	for _, c := range []*cobra.Command{articlesCreateCmd, articlesUpdateCmd} {
		c.Flags().String("description", "", "article description")
		c.Flags().String("quantity", "", "quantity, decimal digits only")
		c.Flags().String("category", "", "article category")
	}

	articlesCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output in JSON format")
	articlesCmd.AddCommand(articlesCreateCmd, articlesGetCmd, articlesUpdateCmd, articlesDeleteCmd, articlesListCmd)
	rootCmd.AddCommand(articlesCmd)
}

func patchFlags(cmd *cobra.Command) model.Patch {
	var p model.Patch
	p.Description, _ = cmd.Flags().GetString("description")
	p.Quantity, _ = cmd.Flags().GetString("quantity")
	p.Category, _ = cmd.Flags().GetString("category")

	return p
}

func runArticlesCreate(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd.Context(), "warn", nil)
	if err != nil {
		return err
	}
	defer e.Close()

	p := patchFlags(cmd)
	a, err := e.svc.Create(cmd.Context(), p.Description, p.Quantity, p.Category)
	if err != nil {
		return err
	}

	if jsonOut {
		return printJSON(cmd.OutOrStdout(), a)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✅ Artículo registrado exitosamente con ID: %s\n", a.ID)

	return nil
}

func runArticlesGet(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd.Context(), "warn", nil)
	if err != nil {
		return err
	}
	defer e.Close()

	a, err := e.svc.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	return printArticles(cmd.OutOrStdout(), []*model.Article{a})
}

func runArticlesUpdate(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd.Context(), "warn", nil)
	if err != nil {
		return err
	}
	defer e.Close()

	a, err := e.svc.Update(cmd.Context(), args[0], patchFlags(cmd))
	if err != nil {
		return err
	}

	return printArticles(cmd.OutOrStdout(), []*model.Article{a})
}

func runArticlesDelete(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd.Context(), "warn", nil)
	if err != nil {
		return err
	}
	defer e.Close()

	if err := e.svc.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}

	if jsonOut {
		return printJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[0]})
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✅ Artículo eliminado exitosamente.")

	return nil
}

func runArticlesList(cmd *cobra.Command, args []string) error {
	e, err := setup(cmd.Context(), "warn", nil)
	if err != nil {
		return err
	}
	defer e.Close()

	list, err := e.svc.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(list) == 0 && !jsonOut {
		fmt.Fprintln(cmd.OutOrStdout(), "❌ No hay artículos registrados.")

		return nil
	}

	return printArticles(cmd.OutOrStdout(), list)
}

func printArticles(w io.Writer, list []*model.Article) error {
	if jsonOut {
		return printJSON(w, list)
	}

	t := newTable(w)
	fmt.Fprintln(t, "#\tID\tDESCRIPCIÓN\tCANTIDAD\tCATEGORÍA")
	for i, a := range list {
		fmt.Fprintf(t, "%d\t%s\t%s\t%s\t%s\n", i+1, a.ID, a.Description, a.Quantity, a.Category)
	}

	return t.Flush()
}
