package imp

// Version of the Imp interpreter.
const Version = "0.1.0"
