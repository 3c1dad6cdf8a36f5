package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/parallaxvm/parallax/script"
	"github.com/parallaxvm/parallax/vm"
)

func main() {
	var run string
	var verbose bool
	var float bool

	flag.StringVar(&run, "c", "", ".star program to run")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&float, "F", false, "Enable the floating point register bank")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(run) == 0 {
		log.Fatalf("%v: no program given (-c program.star)", os.Args[0])
	}

	machine := &vm.Vm{Verbose: verbose, Float: float}

	loader := &script.Loader{Defines: machine.Defines()}
	program, err := loader.Load(run)
	if err != nil {
		log.Fatalf("%v: %v", run, err)
	}

	elapsed, err := machine.Run(program)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(machine.String())
	fmt.Printf("Execution time: %v.\n", elapsed)
}
