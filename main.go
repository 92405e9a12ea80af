package main

import "github.com/ValentinKolb/kvconn/cmd"

func main() {
	cmd.Execute()
}
