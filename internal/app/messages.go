// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// evently server handlers, services and validators.
//
// All Msg* constants are human-readable strings written into the "message"
// field of HTTP response bodies. Keeping them in one place ensures consistent
// wording throughout the API.
package app

// Service status.
const (
	MsgAPIRunning          = "Evently Backend API is running"
	MsgRouteNotFound       = "Route not found"
	MsgTooManyRequests     = "Too many requests from this IP, please try again later."
	MsgInternalServerError = "Internal Server Error"
	MsgServiceUnavailable  = "Service temporarily unavailable."
	MsgInvalidRequestBody  = "Invalid request body."
	MsgForbidden           = "You are not allowed to modify this resource."
)

// Registration and verification.
const (
	MsgUserRegistered        = "User registered successfully. Please check your email to verify your account."
	MsgAllFieldsRequired     = "All fields are required."
	MsgInvalidEmail          = "Please provide a valid email address."
	MsgEmailInUse            = "Email is already in use. Please try another one."
	MsgUsernameTaken         = "Username is already taken. Please choose a different one."
	MsgEmailVerified         = "Email verified successfully."
	MsgInvalidOrExpiredToken = "Invalid or expired verification token."
	MsgAlreadyVerified       = "Email is already verified."
	MsgVerificationResent    = "Verification email sent. Please check your inbox."
)

// Session.
const (
	MsgCredentialsRequired = "Email and password are required."
	MsgInvalidCredentials  = "Invalid email or password."
	MsgEmailNotVerified    = "Please verify your email before logging in."
	MsgLoginSuccessful     = "Login successful."
	MsgNoTokenProvided     = "No token provided"
	MsgInvalidToken        = "Invalid or expired token."
	MsgUserNotFound        = "User not found."
	MsgUserUpdated         = "User updated successfully."
	MsgNoFieldsToUpdate    = "At least one field must be provided for update."
	MsgEmptyUpdateField    = "Updated fields cannot be empty."
)

// Password reset.
const (
	MsgEmailRequired          = "Email is required."
	MsgOTPRequired            = "Email and OTP are required."
	MsgNewPasswordRequired    = "New password is required."
	MsgOTPSent                = "OTP sent to your email."
	MsgOTPVerified            = "OTP verified successfully."
	MsgInvalidOrExpiredOTP    = "Invalid or expired OTP."
	MsgPasswordResetSucceeded = "Password reset successfully."
)

// Events.
const (
	MsgEventCreated         = "Event created successfully"
	MsgEventUpdated         = "Event updated successfully"
	MsgEventDeleted         = "Event deleted successfully"
	MsgEventNotFound        = "Event not found"
	MsgEventIDRequired      = "Event ID is required"
	MsgUserIDRequired       = "User ID is required."
	MsgEventFieldsRequired  = "Event name, category, description, dates and times are required."
	MsgInvalidEventDates    = "Event end date cannot be before its start date."
	MsgInvalidLocationMode  = "Event location must be one of physical, online or both."
	MsgVenueRequired        = "Country, state and location are required for physical events."
	MsgURLRequired          = "URL is required for online events."
	MsgEventCreatorRequired = "Event creator is required."
	MsgImageUploaded        = "Event image uploaded successfully"
	MsgImageRequired        = "An image file is required."
	MsgImageUploadDisabled  = "Image upload is not configured."
	MsgInvalidImageType     = "Only JPEG, PNG, GIF and WebP images are allowed."
)

// Tickets.
const (
	MsgTicketCreated         = "Ticket created successfully"
	MsgTicketUpdated         = "Ticket updated successfully"
	MsgTicketDeleted         = "Ticket deleted successfully"
	MsgTicketNotFound        = "Ticket not found"
	MsgTicketFieldsRequired  = "Ticket name, benefits and description are required."
	MsgInvalidTicketType     = "Ticket type must be free or paid."
	MsgInvalidStockType      = "Ticket stock must be limited or unlimited."
	MsgAvailableRequired     = "Available tickets are required for limited stock."
	MsgInvalidPurchaseLimit  = "Purchase limit must be a positive number."
	MsgPayoutRequired        = "Price, bank, account number and account name are required for paid tickets."
	MsgInvalidTicketQuantity = "Ticket quantities cannot be negative."
)
