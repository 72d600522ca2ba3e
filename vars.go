package main

var appVersion = "0.1.0"
