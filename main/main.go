package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"github.com/phil-mansfield/gogalaxy/analyze"
	"github.com/phil-mansfield/gogalaxy/anim"
	"github.com/phil-mansfield/gogalaxy/display"
	"github.com/phil-mansfield/gogalaxy/encode"
	"github.com/phil-mansfield/gogalaxy/field"
	"github.com/phil-mansfield/gogalaxy/io"
	"github.com/phil-mansfield/gogalaxy/render"
)

const plotBins = 60

type FileGroup struct {
	log, prof *os.File
}

func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

// openFileGroup redirects logging to con.LogFile and starts profiling into
// con.ProfileFile, if either is set.
func openFileGroup(con *io.AnimationConfig) *FileGroup {
	fg := &FileGroup{}
	var err error

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}

func main() {
	var (
		animate, plot string
		exampleConfig string
		threads       int
	)
	vars := map[string]*string{
		"Animate":       &animate,
		"Plot":          &plot,
		"ExampleConfig": &exampleConfig,
	}

	flag.StringVar(
		&animate, "Animate", "",
		"Configuration file for [Animate] mode.",
	)
	flag.StringVar(
		&plot, "Plot", "",
		"Configuration file for [Plot] mode. The output directory is "+
			"given as a positional argument and defaults to '.'.",
	)
	flag.StringVar(
		&exampleConfig,
		"ExampleConfig", "", "Prints an example configuration file of the "+
			"specified type to stdout. The only accepted argument is 'Galaxy'.",
	)
	flag.IntVar(
		&threads, "Threads", 0,
		"Number of OS threads to run on. Defaults to the number of cores.",
	)

	flag.Parse()

	if threads > 0 {
		runtime.GOMAXPROCS(threads)
	} else if threads < 0 {
		log.Fatalf("'Threads' must be non-negative, not %d.", threads)
	}

	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Animate":
		wrap, err := io.ReadConfig(animate)
		if err != nil {
			log.Fatal(err.Error())
		}
		animateMain(wrap)

	case "Plot":
		wrap, err := io.ReadConfig(plot)
		if err != nil {
			log.Fatal(err.Error())
		}
		dir := "."
		if args := flag.Args(); len(args) == 1 {
			dir = args[0]
		} else if len(args) > 1 {
			log.Fatal("Plot mode accepts at most one output directory.")
		}
		plotMain(wrap, dir)

	case "ExampleConfig":
		switch exampleConfig {
		case "Galaxy":
			fmt.Println(io.ExampleConfigFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. The only recognized " +
					"argument is 'Galaxy'.",
			)
		}
	default:
		panic("Impossible")
	}
}

func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but gogalaxy "+
				"only accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

func animateMain(wrap *io.Wrapper) {
	con := &wrap.Animation
	fg := openFileGroup(con)
	defer fg.Close()

	log.Println("Running Animate main.")

	var path *io.CameraPath
	if con.ValidCameraPath() {
		var err error
		path, err = io.ReadCameraPath(
			con.CameraPath, con.CameraInterpolation,
		)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	f, err := field.Generate(&wrap.Galaxy)
	if err != nil {
		log.Fatal(err.Error())
	}
	log.Printf(
		"Generated %d stars (%d arm, %d bulge).",
		f.Len(), wrap.Galaxy.Arms*wrap.Galaxy.ArmStars, wrap.Galaxy.BulgeStars,
	)

	enc, err := encode.New(con.Encoder, con.Output)
	if err != nil {
		log.Fatal(err.Error())
	}
	disp, err := display.New(con.Display, wrap.Render.Title)
	if err != nil {
		log.Fatal(err.Error())
	}

	r := render.NewSplatter(&wrap.Render)
	d := anim.NewDriver(f, con, &wrap.Render, r, path)
	if err := d.Run(enc, disp); err != nil {
		log.Fatal(err.Error())
	}
}

func plotMain(wrap *io.Wrapper, dir string) {
	fg := openFileGroup(&wrap.Animation)
	defer fg.Close()

	log.Println("Running Plot main.")

	if err := os.MkdirAll(dir, 0777); err != nil {
		log.Fatal(err.Error())
	}

	f, err := field.Generate(&wrap.Galaxy)
	if err != nil {
		log.Fatal(err.Error())
	}

	if err := analyze.PlotField(f, dir, plotBins); err != nil {
		log.Fatal(err.Error())
	}
	log.Printf("Plots written to %s.", dir)
}
