package ui

type example struct {
	name string
	code string
}

// examples are offered in the toolbar; the first one is loaded at start.
var examples = []example{
	{"Square", `# Draw a square
repeat 4
    move forward 100
    turn right 90
end
say "Done!"`},
	{"Star", `color "gold"
repeat 5
    move forward 150
    turn right 144
end
say "A star!"`},
	{"Spiral", `set size = 5
color "purple"
repeat 40
    move forward size
    turn right 90
    set size = size + 5
end`},
	{"Dashed line", `turn left 90
repeat 8
    pen down
    move forward 15
    pen up
    move forward 10
end
pen down`},
	{"Flower", `define petal
    repeat 2
        move forward 60
        turn right 120
        move forward 60
        turn right 60
    end
end
color "red"
repeat 6
    petal
    turn right 60
end
say "For you"`},
}

func exampleNames() []string {
	names := make([]string, len(examples))
	for i, ex := range examples {
		names[i] = ex.name
	}
	return names
}

func exampleCode(name string) (string, bool) {
	for _, ex := range examples {
		if ex.name == name {
			return ex.code, true
		}
	}
	return "", false
}
