package fabric

// Exported for white-box tests
var MapChaincodeError = mapChaincodeError
