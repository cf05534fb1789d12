package main

// morseCodes holds the fixed alphanumeric code table.  It is parsed into
// symbol sequences once at startup.
var morseCodes = map[rune]string{
    'a': ".-", 'b': "-...", 'c': "-.-.", 'd': "-..", 'e': ".",
    'f': "..-.", 'g': "--.", 'h': "....", 'i': "..", 'j': ".---",
    'k': "-.-", 'l': ".-..", 'm': "--", 'n': "-.", 'o': "---",
    'p': ".--.", 'q': "--.-", 'r': ".-.", 's': "...", 't': "-",
    'u': "..-", 'v': "...-", 'w': ".--", 'x': "-..-", 'y': "-.--",
    'z': "--..",
    '0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
    '5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
}

var morseTable map[rune]CodeSequence

func init() {
    morseTable = make(map[rune]CodeSequence, len(morseCodes))
    for r, code := range morseCodes {
        morseTable[r] = parseCode(code)
    }
}

// parseCode turns a string of dots and dashes into symbols.  Any character
// other than '-' is read as a dot.
func parseCode(code string) CodeSequence {
    seq := make(CodeSequence, 0, len(code))
    for _, c := range code {
        if c == '-' {
            seq = append(seq, SymbolDash)
        } else {
            seq = append(seq, SymbolDot)
        }
    }
    return seq
}

// Lookup returns the code for a lowercase letter or digit.  Callers normalise
// case first; uppercase and every other rune report false.
func Lookup(r rune) (CodeSequence, bool) {
    seq, ok := morseTable[r]
    return seq, ok
}
