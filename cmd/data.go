package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kennelops/kennelplan/core/model"
)

var (
	importFile   string
	importSource string

	profileName  string
	profileAge   int
	profileLead  bool
	profileTeam  bool
	profileWheel bool

	relationA    string
	relationB    string
	relationKind string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import workload history from a wide-month CSV sheet",
	RunE:  runImport,
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Create or update a dog profile",
	RunE:  runProfile,
}

var relationCmd = &cobra.Command{
	Use:   "relation",
	Short: "Declare a kennel pair or conflict between two dogs",
	RunE:  runRelation,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "CSV file to import")
	importCmd.Flags().StringVar(&importSource, "source", "csv", "source label for deduplication")
	_ = importCmd.MarkFlagRequired("file")

	profileCmd.Flags().StringVar(&profileName, "name", "", "dog name")
	profileCmd.Flags().IntVar(&profileAge, "age", 0, "age in years")
	profileCmd.Flags().BoolVar(&profileLead, "lead", false, "can run lead")
	profileCmd.Flags().BoolVar(&profileTeam, "team", false, "can run team")
	profileCmd.Flags().BoolVar(&profileWheel, "wheel", false, "can run wheel")
	_ = profileCmd.MarkFlagRequired("name")

	relationCmd.Flags().StringVar(&relationA, "a", "", "first dog")
	relationCmd.Flags().StringVar(&relationB, "b", "", "second dog")
	relationCmd.Flags().StringVar(&relationKind, "kind", "pair", "relation kind: pair or conflict")
	_ = relationCmd.MarkFlagRequired("a")
	_ = relationCmd.MarkFlagRequired("b")

	rootCmd.AddCommand(importCmd, profileCmd, relationCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	res, err := svc.Store().ImportWideCSV(importFile, importSource)
	if err != nil {
		return err
	}
	return printJSON(res)
}

func runProfile(cmd *cobra.Command, args []string) error {
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	return svc.Store().SetProfile(model.DogProfile{
		Name:     profileName,
		AgeYears: profileAge,
		CanLead:  profileLead,
		CanTeam:  profileTeam,
		CanWheel: profileWheel,
	})
}

func runRelation(cmd *cobra.Command, args []string) error {
	kind, err := model.ParseRelationKind(relationKind)
	if err != nil {
		return fmt.Errorf("bad --kind: %w", err)
	}
	svc, err := newService()
	if err != nil {
		return err
	}
	defer closeService(svc)

	return svc.Store().AddRelation(model.Relation{A: relationA, B: relationB, Kind: kind})
}
