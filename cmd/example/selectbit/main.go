package main

import (
	"fmt"
	"log"

	nice "github.com/RWayne93/NICE"
	"github.com/RWayne93/NICE/dagnn"
	"github.com/RWayne93/NICE/task"
)

func main() {
	conf := nice.Config{
		NNConf: dagnn.DefaultConfig(7, 3, 1),
		Task:   task.SelectBit(),
	}
	a, err := nice.New(conf)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	res, err := a.Learn(false)
	if err != nil {
		log.Fatalf("%+v", err)
	}
	fmt.Printf("%v after %d generations\n", res, res.Generations)
	fmt.Print(a.NN)

	for _, ex := range a.Task().Examples()[:4] {
		out, _ := a.NN.Forward(ex.Input)
		fmt.Printf("%v → %0.3f (want %v)\n", ex.Input, out[0], ex.Output[0])
	}

	if err := a.Save("selectbit.model"); err != nil {
		log.Fatalf("%+v", err)
	}
}
