package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/modelview/pkg/stl"
)

var infoCmd = &cobra.Command{
	Use:   "info <file>",
	Short: "Display information about an STL file",
	Long:  "Show the solids, triangle count, surface area and bounding box of a model without opening a window.",
	Args:  cobra.ExactArgs(1),
	Run:   runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) {
	filename := args[0]

	model, err := stl.Parse(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing STL file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("STL File Information")
	fmt.Println("====================")
	if model.Name != "" {
		fmt.Printf("Name: %s\n", model.Name)
	}
	fmt.Printf("File: %s\n\n", filename)

	fmt.Printf("Solids: %d\n", len(model.Solids))
	for i := range model.Solids {
		s := &model.Solids[i]
		fmt.Printf("  %-24s %d triangles\n", s.Name, len(s.Triangles))
	}
	fmt.Printf("Triangles: %d\n", model.TriangleCount())
	fmt.Printf("Surface Area: %.6f square units\n\n", model.SurfaceArea())

	box, ok := model.BoundingBox()
	if !ok {
		fmt.Println("Bounding Box: empty model")
		return
	}
	size := box.Size()
	center := box.Center()
	fmt.Println("Bounding Box:")
	fmt.Printf("  Min: (%.3f, %.3f, %.3f)\n", box.Min.X(), box.Min.Y(), box.Min.Z())
	fmt.Printf("  Max: (%.3f, %.3f, %.3f)\n", box.Max.X(), box.Max.Y(), box.Max.Z())
	fmt.Printf("  Center: (%.3f, %.3f, %.3f)\n\n", center.X(), center.Y(), center.Z())

	fmt.Println("Dimensions:")
	fmt.Printf("  Width (X): %.6f units\n", size.X())
	fmt.Printf("  Depth (Y): %.6f units\n", size.Y())
	fmt.Printf("  Height (Z): %.6f units\n", size.Z())
}
