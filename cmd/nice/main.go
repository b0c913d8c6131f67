package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strconv"
	"strings"

	nice "github.com/RWayne93/NICE"
	"github.com/RWayne93/NICE/dagnn"
	"github.com/RWayne93/NICE/encoding/gif"
	"github.com/RWayne93/NICE/encoding/mjpeg"
	"github.com/RWayne93/NICE/shell"
	"github.com/RWayne93/NICE/task"
	"github.com/pkg/errors"
)

var (
	taskName   = flag.String("task", "selectbit", fmt.Sprintf("task to learn, one of %v", task.Names()))
	csvFile    = flag.String("csv", "", "learn examples from a CSV file instead of a built in task. Needs -a and -c")
	inputs     = flag.Int("a", 0, "number of inputs. Defaults to the task's")
	hidden     = flag.Int("b", -1, "number of hidden units. Defaults to the task's")
	outputs    = flag.Int("c", 0, "number of outputs. Defaults to the task's")
	weights    = flag.String("weights", "0,0,0,1", "initial weights of the in→hid, in→out, hid→hid and hid→out links")
	rate       = flag.Float64("lr", 0.01, "initial learning rate")
	threshold  = flag.Float64("threshold", 2, "error to reach in minimize mode")
	gens       = flag.Int("gens", 10000, "maximum number of generations")
	candidates = flag.Int("candidates", 1, "links sampled per generation")
	every      = flag.Int("report", 100, "report every this many generations")
	seed       = flag.Int64("seed", 0, "random seed. 0 seeds from the clock")
	minimize   = flag.Bool("minimize", false, "keep learning after every example is right until the error is under -threshold")

	load      = flag.String("load", "", "start from a saved network")
	save      = flag.String("save", "", "save the learned network")
	gifFile   = flag.String("gif", "", "write an animation of the learning")
	statsFile = flag.String("stats", "", "write every report as CSV")
	dotFile   = flag.String("dot", "", "write the learned network as a Graphviz graph")
	addr      = flag.String("http", "", "serve /ws (JSON progress), /stream (MJPEG) and /debug/pprof on this address")
	interact  = flag.Bool("shell", false, "drive a network with text commands on stdin instead")
)

func parseWeights(s string) (retVal [4]float32, err error) {
	splits := strings.Split(s, ",")
	if len(splits) != len(retVal) {
		return retVal, errors.Errorf("expected 4 weights. Got %q", s)
	}
	for i, split := range splits {
		w, err := strconv.ParseFloat(strings.TrimSpace(split), 32)
		if err != nil {
			return retVal, errors.Wrapf(err, "weight %d", i)
		}
		retVal[i] = float32(w)
	}
	return retVal, nil
}

func loadTask() (task.Task, error) {
	if *csvFile == "" {
		return task.ByName(*taskName)
	}
	f, err := os.Open(*csvFile)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()
	b := *hidden
	if b < 0 {
		b = 0
	}
	return task.FromCSV(*csvFile, f, dagnn.Structure{A: *inputs, B: b, C: *outputs})
}

func config(t task.Task) (dagnn.Config, error) {
	s := t.Structure()
	if *inputs > 0 {
		s.A = *inputs
	}
	if *hidden >= 0 {
		s.B = *hidden
	}
	if *outputs > 0 {
		s.C = *outputs
	}
	conf := dagnn.DefaultConfig(s.A, s.B, s.C)
	w, err := parseWeights(*weights)
	if err != nil {
		return conf, err
	}
	conf.Weights = w
	conf.LearningRate = float32(*rate)
	conf.Threshold = float32(*threshold)
	conf.MaxGenerations = *gens
	conf.Candidates = *candidates
	conf.ReportEvery = *every
	conf.Seed = *seed
	if !conf.IsValid() {
		return conf, errors.Errorf("invalid configuration %+v", conf)
	}
	return conf, nil
}

// run learns the configured task. Errors are returned rather than fatal so that
// deferred closes run before the process exits.
func run() (converged bool, err error) {
	t, err := loadTask()
	if err != nil {
		return false, err
	}
	conf, err := config(t)
	if err != nil {
		return false, err
	}

	if *interact {
		e, err := shell.New(conf, "nice", "0.1", nil)
		if err != nil {
			return false, err
		}
		return true, e.Run(os.Stdin, os.Stdout)
	}

	var encs nice.Encoders
	if *gifFile != "" {
		f, err := os.OpenFile(*gifFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
		if err != nil {
			return false, errors.WithStack(err)
		}
		defer f.Close()
		gifEnc := gif.NewGifEncoder(600, 800)
		gifEnc.Writer = f
		encs = append(encs, gifEnc)
	}
	if *addr != "" {
		ws := NewEncoder(64)
		stream := mjpeg.NewEncoder(600, 800)
		encs = append(encs, ws, stream)
		go func() {
			http.Handle("/ws", ws)
			http.Handle("/stream", stream)
			log.Printf("http://%s/stream", *addr)
			if err := http.ListenAndServe(*addr, nil); err != nil {
				log.Println(err)
			}
		}()
	}

	nc := nice.Config{
		Name:   t.Name(),
		NNConf: conf,
		Task:   t,
	}
	if len(encs) > 0 {
		nc.OutputEncoder = encs
	}
	a, err := nice.New(nc)
	if err != nil {
		return false, err
	}
	if *load != "" {
		if err := a.Load(*load); err != nil {
			return false, err
		}
	}

	res, err := a.Learn(*minimize)
	if err != nil {
		log.Printf("%+v", err)
	}
	fmt.Printf("%v after %d generations: error %0.4f score %d / %d\n", res, res.Generations, res.Error, res.Fitness, len(t.Examples()))
	fmt.Print(a.NN)

	if *save != "" {
		if err := a.Save(*save); err != nil {
			return false, err
		}
	}
	if *statsFile != "" {
		if err := a.Dump(*statsFile); err != nil {
			return false, err
		}
	}
	if *dotFile != "" {
		if err := os.WriteFile(*dotFile, []byte(a.ToDot()), 0644); err != nil {
			return false, errors.WithStack(err)
		}
	}
	return res.Converged, nil
}

func main() {
	flag.Parse()

	converged, err := run()
	if err != nil {
		log.Fatalf("%+v", err)
	}
	if !converged {
		os.Exit(1)
	}
}
